package domain

import "time"

type Role string

const (
	RoleLoanOfficer      Role = "LO"
	RoleCrossSell        Role = "CROSS_SELL"
	RoleTerritoryManager Role = "TERRITORY_MANAGER"
	RoleSuperAdmin       Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleLoanOfficer, RoleCrossSell, RoleTerritoryManager, RoleSuperAdmin:
		return true
	}
	return false
}

// IsFieldRep reports whether the role does assignable field work and is
// therefore counted in workload distribution.
func (r Role) IsFieldRep() bool {
	return r == RoleLoanOfficer || r == RoleCrossSell
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusSuspended
}

// TerritoryAll is the global-scope sentinel, valid only for super admins.
const TerritoryAll = "All"

type User struct {
	ID        string
	Name      string
	Mobile    string
	HRID      string
	Role      Role
	Territory string
	Status    UserStatus
}

type AmanScore string

const (
	AmanScoreHigh   AmanScore = "HIGH"
	AmanScoreMedium AmanScore = "MEDIUM"
	AmanScoreLow    AmanScore = "LOW"
)

func (s AmanScore) Valid() bool {
	return s == AmanScoreHigh || s == AmanScoreMedium || s == AmanScoreLow
}

type ProductType string

const (
	ProductMicrofinance ProductType = "MF"
	ProductPayments     ProductType = "BP"
	ProductPurchaseCard ProductType = "ACC"
)

func (t ProductType) Valid() bool {
	return t == ProductMicrofinance || t == ProductPayments || t == ProductPurchaseCard
}

type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusPending      ProductStatus = "PENDING"
	ProductStatusRejected     ProductStatus = "REJECTED"
	ProductStatusNotOnboarded ProductStatus = "NOT_ONBOARDED"
)

type ProductHolding struct {
	Type   ProductType
	Status ProductStatus
}

type Note struct {
	ID         string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}

type Merchant struct {
	ID           string
	BusinessName string
	PersonalName string
	NID          string
	Mobile       string
	Address      string
	Territory    string
	AmanScore    AmanScore
	Products     []ProductHolding
	OwnerID      string
	Notes        []Note
}

// HasProduct reports whether the merchant already holds the given product
// type. At most one holding per type is allowed.
func (m *Merchant) HasProduct(t ProductType) bool {
	for _, p := range m.Products {
		if p.Type == t {
			return true
		}
	}
	return false
}

// FieldValue returns the current value of an editable merchant field.
// LOCATION edits are stored against the address until coordinates exist.
func (m *Merchant) FieldValue(f EditableField) (string, bool) {
	switch f {
	case FieldMobile:
		return m.Mobile, true
	case FieldBusinessName:
		return m.BusinessName, true
	case FieldAddress, FieldLocation:
		return m.Address, true
	case FieldTerritory:
		return m.Territory, true
	}
	return "", false
}

type TaskType string

const (
	TaskTypeCrossSellBP  TaskType = "CROSS_SELL_BP"
	TaskTypeCrossSellACC TaskType = "CROSS_SELL_ACC"
	TaskTypeFollowUp     TaskType = "FOLLOW_UP"
	TaskTypeReEngage     TaskType = "RE_ENGAGE"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityLow    TaskPriority = "LOW"
)

type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "OPEN"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

type TaskOutcome string

const (
	OutcomeInterested    TaskOutcome = "INTERESTED"
	OutcomeNotInterested TaskOutcome = "NOT_INTERESTED"
	OutcomeRescheduled   TaskOutcome = "RESCHEDULED"
	OutcomeCannotReach   TaskOutcome = "CANNOT_REACH"
)

func (o TaskOutcome) Valid() bool {
	switch o {
	case OutcomeInterested, OutcomeNotInterested, OutcomeRescheduled, OutcomeCannotReach:
		return true
	}
	return false
}

type Task struct {
	ID           string
	Type         TaskType
	MerchantID   string
	AssignedToID string
	Priority     TaskPriority
	Status       TaskStatus
	DueDate      time.Time
	CreatedAt    time.Time
	Outcome      TaskOutcome
}

func (t Task) IsOpen() bool {
	return t.Status == TaskStatusOpen
}

type EditableField string

const (
	FieldMobile       EditableField = "MOBILE"
	FieldBusinessName EditableField = "BUSINESS_NAME"
	FieldAddress      EditableField = "ADDRESS"
	FieldTerritory    EditableField = "TERRITORY"
	FieldLocation     EditableField = "LOCATION"
)

func (f EditableField) Valid() bool {
	switch f {
	case FieldMobile, FieldBusinessName, FieldAddress, FieldTerritory, FieldLocation:
		return true
	}
	return false
}

type EditRequestStatus string

const (
	EditRequestPending   EditRequestStatus = "PENDING"
	EditRequestApproved  EditRequestStatus = "APPROVED"
	EditRequestRejected  EditRequestStatus = "REJECTED"
	EditRequestEscalated EditRequestStatus = "ESCALATED"
)

// Requester is the denormalized identity of the field rep who filed a
// request, kept on the request so history survives later user changes.
type Requester struct {
	ID   string
	Name string
	Role Role
}

type EditRequest struct {
	ID              string
	MerchantID      string
	MerchantName    string
	Field           EditableField
	OldValue        string
	NewValue        string
	RequestedBy     Requester
	RequestedAt     time.Time
	Reason          string
	Status          EditRequestStatus
	RejectionReason string
	Territory       string
}

// IsReviewable reports whether the request still accepts an approve or
// reject transition. APPROVED and REJECTED are terminal.
func (r EditRequest) IsReviewable() bool {
	return r.Status == EditRequestPending || r.Status == EditRequestEscalated
}
