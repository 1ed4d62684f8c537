package seed

import (
	"github.com/Abraxas-365/jobboard/recruitment/catalog"
	"github.com/Abraxas-365/jobboard/recruitment/job"
)

var categories = []catalog.TermRequest{
	{Name: "Software Development", Description: "Programming and software engineering roles"},
	{Name: "Data Science", Description: "Data analysis, machine learning, and AI roles"},
	{Name: "Marketing", Description: "Digital marketing, content creation, and advertising"},
	{Name: "Design", Description: "UI/UX design, graphic design, and creative roles"},
	{Name: "Sales", Description: "Sales and business development positions"},
	{Name: "Operations", Description: "Operations, logistics, and supply chain management"},
	{Name: "Finance", Description: "Accounting, financial analysis, and investment roles"},
	{Name: "Human Resources", Description: "HR, recruitment, and people operations"},
}

var jobTypes = []catalog.TermRequest{
	{Name: "Full-time", Description: "Permanent full-time employment"},
	{Name: "Part-time", Description: "Part-time employment"},
	{Name: "Contract", Description: "Contract-based work"},
	{Name: "Freelance", Description: "Freelance and project-based work"},
	{Name: "Internship", Description: "Internship and entry-level positions"},
}

var companies = []catalog.CreateCompanyRequest{
	{
		Name:        "TechCorp Solutions",
		Description: "Leading technology company specializing in cloud solutions",
		Website:     "https://techcorp.com",
		Location:    "San Francisco, CA",
		Size:        "500-1000",
		Industry:    "Technology",
	},
	{
		Name:        "DataFlow Inc",
		Description: "Data analytics and machine learning company",
		Website:     "https://dataflow.com",
		Location:    "New York, NY",
		Size:        "100-500",
		Industry:    "Data Science",
	},
	{
		Name:        "Creative Agency",
		Description: "Full-service digital marketing and design agency",
		Website:     "https://creativeagency.com",
		Location:    "Los Angeles, CA",
		Size:        "50-100",
		Industry:    "Marketing",
	},
	{
		Name:        "FinanceFirst",
		Description: "Financial services and investment management",
		Website:     "https://financefirst.com",
		Location:    "Chicago, IL",
		Size:        "1000+",
		Industry:    "Finance",
	},
	{
		Name:        "StartupXYZ",
		Description: "Innovative startup in the fintech space",
		Website:     "https://startupxyz.com",
		Location:    "Austin, TX",
		Size:        "10-50",
		Industry:    "Technology",
	},
}

// sampleJob refers to the catalog entries above by index
type sampleJob struct {
	Title            string
	Description      string
	Requirements     string
	Responsibilities string
	Benefits         string
	Company          int
	Category         int
	JobType          int
	Location         string
	IsRemote         bool
	SalaryMin        int64
	SalaryMax        int64
	Level            job.ExperienceLevel
	Tags             string
}

var jobs = []sampleJob{
	{
		Title:            "Senior Python Developer",
		Description:      "We are looking for an experienced Python developer to join our backend team. You will work on building scalable APIs and microservices.",
		Requirements:     "5+ years Python experience, Django/FastAPI knowledge, PostgreSQL, Docker, AWS",
		Responsibilities: "Develop and maintain backend services, collaborate with frontend team, optimize database queries",
		Benefits:         "Health insurance, 401k, flexible hours, remote work options",
		Company:          0,
		Category:         0,
		JobType:          0,
		Location:         "San Francisco, CA",
		IsRemote:         true,
		SalaryMin:        120000,
		SalaryMax:        160000,
		Level:            job.LevelSenior,
		Tags:             "python, django, api, backend, senior",
	},
	{
		Title:            "Data Scientist",
		Description:      "Join our data science team to build machine learning models and analyze large datasets.",
		Requirements:     "PhD in Data Science or related field, Python, R, TensorFlow, SQL, statistics",
		Responsibilities: "Build ML models, analyze data, create visualizations, collaborate with engineering team",
		Benefits:         "Competitive salary, stock options, learning budget",
		Company:          1,
		Category:         1,
		JobType:          0,
		Location:         "New York, NY",
		SalaryMin:        100000,
		SalaryMax:        140000,
		Level:            job.LevelMid,
		Tags:             "data-science, machine-learning, python, statistics",
	},
	{
		Title:            "Frontend Developer",
		Description:      "Create beautiful and responsive user interfaces using modern web technologies.",
		Requirements:     "3+ years React experience, TypeScript, CSS, HTML, Git",
		Responsibilities: "Build user interfaces, optimize performance, collaborate with designers",
		Benefits:         "Flexible schedule, health benefits, professional development",
		Company:          2,
		Category:         0,
		JobType:          0,
		Location:         "Los Angeles, CA",
		IsRemote:         true,
		SalaryMin:        80000,
		SalaryMax:        110000,
		Level:            job.LevelMid,
		Tags:             "react, frontend, javascript, typescript, ui",
	},
	{
		Title:            "Marketing Manager",
		Description:      "Lead our marketing efforts and develop strategies to grow our customer base.",
		Requirements:     "5+ years marketing experience, digital marketing, analytics, team leadership",
		Responsibilities: "Develop marketing strategies, manage campaigns, analyze performance, lead team",
		Benefits:         "Health insurance, 401k, bonus potential, flexible hours",
		Company:          2,
		Category:         2,
		JobType:          0,
		Location:         "Los Angeles, CA",
		SalaryMin:        70000,
		SalaryMax:        95000,
		Level:            job.LevelSenior,
		Tags:             "marketing, digital-marketing, strategy, management",
	},
	{
		Title:            "DevOps Engineer",
		Description:      "Manage our cloud infrastructure and deployment pipelines.",
		Requirements:     "3+ years DevOps experience, AWS, Docker, Kubernetes, CI/CD",
		Responsibilities: "Manage cloud infrastructure, automate deployments, monitor systems",
		Benefits:         "Competitive salary, health benefits, remote work",
		Company:          4,
		Category:         0,
		JobType:          0,
		Location:         "Austin, TX",
		IsRemote:         true,
		SalaryMin:        90000,
		SalaryMax:        130000,
		Level:            job.LevelMid,
		Tags:             "devops, aws, docker, kubernetes, infrastructure",
	},
	{
		Title:            "UI/UX Designer",
		Description:      "Design intuitive and beautiful user experiences for our products.",
		Requirements:     "3+ years design experience, Figma, Adobe Creative Suite, user research",
		Responsibilities: "Create wireframes, design interfaces, conduct user research, collaborate with developers",
		Benefits:         "Creative freedom, health benefits, design tools budget",
		Company:          2,
		Category:         3,
		JobType:          0,
		Location:         "Los Angeles, CA",
		IsRemote:         true,
		SalaryMin:        65000,
		SalaryMax:        90000,
		Level:            job.LevelMid,
		Tags:             "ui, ux, design, figma, user-research",
	},
	{
		Title:            "Sales Representative",
		Description:      "Drive sales growth by building relationships with new and existing clients.",
		Requirements:     "2+ years sales experience, communication skills, CRM experience",
		Responsibilities: "Generate leads, close deals, maintain client relationships, meet targets",
		Benefits:         "Commission structure, health benefits, car allowance",
		Company:          3,
		Category:         4,
		JobType:          0,
		Location:         "Chicago, IL",
		SalaryMin:        50000,
		SalaryMax:        80000,
		Level:            job.LevelEntry,
		Tags:             "sales, business-development, crm, communication",
	},
	{
		Title:            "Financial Analyst",
		Description:      "Analyze financial data and provide insights to support business decisions.",
		Requirements:     "Bachelor in Finance, Excel, financial modeling, analytical skills",
		Responsibilities: "Analyze financial data, create reports, support budgeting, risk assessment",
		Benefits:         "Health insurance, 401k, professional development, bonus potential",
		Company:          3,
		Category:         6,
		JobType:          0,
		Location:         "Chicago, IL",
		SalaryMin:        60000,
		SalaryMax:        85000,
		Level:            job.LevelEntry,
		Tags:             "finance, analysis, excel, modeling, reporting",
	},
}
