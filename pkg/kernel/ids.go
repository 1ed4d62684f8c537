package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type CompanyID string

func NewCompanyID(id string) CompanyID { return CompanyID(id) }
func (r CompanyID) String() string     { return string(r) }
func (r CompanyID) IsEmpty() bool      { return string(r) == "" }

type CategoryID string

func NewCategoryID(id string) CategoryID { return CategoryID(id) }
func (r CategoryID) String() string      { return string(r) }
func (r CategoryID) IsEmpty() bool       { return string(r) == "" }

type JobTypeID string

func NewJobTypeID(id string) JobTypeID { return JobTypeID(id) }
func (r JobTypeID) String() string     { return string(r) }
func (r JobTypeID) IsEmpty() bool      { return string(r) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (r ApplicationID) String() string         { return string(r) }
func (r ApplicationID) IsEmpty() bool          { return string(r) == "" }

type SavedJobID string

func NewSavedJobID(id string) SavedJobID { return SavedJobID(id) }
func (r SavedJobID) String() string      { return string(r) }
func (r SavedJobID) IsEmpty() bool       { return string(r) == "" }

type JobAlertID string

func NewJobAlertID(id string) JobAlertID { return JobAlertID(id) }
func (r JobAlertID) String() string      { return string(r) }
func (r JobAlertID) IsEmpty() bool       { return string(r) == "" }
