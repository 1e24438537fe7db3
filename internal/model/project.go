package model

import (
	"strings"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
)

// Project statuses. Any status may be set directly.
const (
	ProjectActive    = "Active"
	ProjectCompleted = "Completed"
	ProjectOnHold    = "On Hold"
	ProjectCancelled = "Cancelled"
)

// Payment statuses
const (
	PaymentPending       = "Pending"
	PaymentPaid          = "Paid"
	PaymentPartiallyPaid = "Partially Paid"
)

var (
	projectStatuses  = []string{ProjectActive, ProjectCompleted, ProjectOnHold, ProjectCancelled}
	paymentStatuses  = []string{PaymentPending, PaymentPaid, PaymentPartiallyPaid}
	projectPlatforms = []string{PlatformUpwork, PlatformFiverr, PlatformDirect, PlatformLinkedIn, PlatformOther}
)

// Project is the aggregate root for client work. It owns its tasks, milestones,
// communication logs and attachments; clients and invoices are referenced by ID.
type Project struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"ownerId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ClientID    string  `json:"clientId"`
	Client      *Client `json:"client"` // Resolved on read
	Platform    string  `json:"platform"`

	Status   string `json:"status"`
	Progress int    `json:"progress"`

	StartDate     *Date `json:"startDate"`
	Deadline      *Date `json:"deadline"`
	CompletedDate *Date `json:"completedDate,omitempty"`

	// AmountPaid and PaymentStatus are set by the caller; nothing ties them
	// to Budget or to the linked invoices.
	Budget        float64 `json:"budget"`
	PaymentStatus string  `json:"paymentStatus"`
	AmountPaid    float64 `json:"amountPaid"`

	Tasks             []Task             `json:"tasks"`
	Milestones        []Milestone        `json:"milestones"`
	CommunicationLogs []CommunicationLog `json:"communicationLogs"`
	Attachments       []Attachment       `json:"attachments"`
	Invoices          []string           `json:"invoices"`

	Tags         []string `json:"tags"`
	Category     string   `json:"category,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	Deliverables []string `json:"deliverables"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectInput is the create payload
type ProjectInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Client        string   `json:"client"`
	ClientID      string   `json:"clientId"`
	Platform      string   `json:"platform"`
	Status        string   `json:"status"`
	Progress      *int     `json:"progress"`
	StartDate     *Date    `json:"startDate"`
	Deadline      *Date    `json:"deadline"`
	CompletedDate *Date    `json:"completedDate"`
	Budget        *float64 `json:"budget"`
	PaymentStatus string   `json:"paymentStatus"`
	AmountPaid    *float64 `json:"amountPaid"`

	Tasks             []Task             `json:"tasks"`
	Milestones        []Milestone        `json:"milestones"`
	CommunicationLogs []CommunicationLog `json:"communicationLogs"`
	Attachments       []Attachment       `json:"attachments"`
	Invoices          []string           `json:"invoices"`

	Tags         []string `json:"tags"`
	Category     string   `json:"category"`
	Notes        string   `json:"notes"`
	Requirements string   `json:"requirements"`
	Deliverables []string `json:"deliverables"`
}

// ProjectPatch carries the top-level fields supplied in a partial update.
// Array fields replace the stored array wholesale.
type ProjectPatch struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Client        *string  `json:"client"`
	ClientID      *string  `json:"clientId"`
	Platform      *string  `json:"platform"`
	Status        *string  `json:"status"`
	Progress      *int     `json:"progress"`
	StartDate     *Date    `json:"startDate"`
	Deadline      *Date    `json:"deadline"`
	CompletedDate *Date    `json:"completedDate"`
	Budget        *float64 `json:"budget"`
	PaymentStatus *string  `json:"paymentStatus"`
	AmountPaid    *float64 `json:"amountPaid"`

	Tasks             *[]Task             `json:"tasks"`
	Milestones        *[]Milestone        `json:"milestones"`
	CommunicationLogs *[]CommunicationLog `json:"communicationLogs"`
	Attachments       *[]Attachment       `json:"attachments"`
	Invoices          *[]string           `json:"invoices"`

	Tags         *[]string `json:"tags"`
	Category     *string   `json:"category"`
	Notes        *string   `json:"notes"`
	Requirements *string   `json:"requirements"`
	Deliverables *[]string `json:"deliverables"`
}

// ClientChanged reports whether the patch re-points the project at another client
func (p ProjectPatch) ClientChanged() (string, bool) {
	if p.ClientID != nil {
		return strings.TrimSpace(*p.ClientID), true
	}
	if p.Client != nil {
		return strings.TrimSpace(*p.Client), true
	}
	return "", false
}

// NewProject builds a validated project from input
func NewProject(id, ownerID string, in ProjectInput, now time.Time) (*Project, error) {
	now = Stamp(now)
	p := &Project{
		ID:                id,
		OwnerID:           ownerID,
		Name:              in.Name,
		Description:       in.Description,
		ClientID:          firstNonEmpty(in.ClientID, in.Client),
		Platform:          in.Platform,
		Status:            in.Status,
		StartDate:         in.StartDate,
		Deadline:          in.Deadline,
		CompletedDate:     in.CompletedDate,
		PaymentStatus:     in.PaymentStatus,
		Tasks:             in.Tasks,
		Milestones:        in.Milestones,
		CommunicationLogs: in.CommunicationLogs,
		Attachments:       in.Attachments,
		Invoices:          in.Invoices,
		Tags:              in.Tags,
		Category:          in.Category,
		Notes:             in.Notes,
		Requirements:      in.Requirements,
		Deliverables:      in.Deliverables,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.Progress != nil {
		p.Progress = *in.Progress
	}
	if in.Budget != nil {
		p.Budget = *in.Budget
	}
	if in.AmountPaid != nil {
		p.AmountPaid = *in.AmountPaid
	}

	p.Normalize(now)

	var problems []string
	if in.Budget == nil {
		problems = append(problems, "budget is required")
	}
	problems = append(problems, p.problems()...)
	if len(problems) > 0 {
		return nil, apperr.Validation(problems...)
	}
	return p, nil
}

// Apply merges the supplied top-level fields and re-validates. now stamps
// defaults of new sub-documents; UpdatedAt is moved by the store on save.
// On error the project is left partially merged and must be discarded.
func (p *Project) Apply(patch ProjectPatch, now time.Time) error {
	setString(&p.Name, patch.Name)
	setString(&p.Description, patch.Description)
	if id, ok := patch.ClientChanged(); ok {
		p.ClientID = id
	}
	setString(&p.Platform, patch.Platform)
	setString(&p.Status, patch.Status)
	if patch.Progress != nil {
		p.Progress = *patch.Progress
	}
	if patch.StartDate != nil {
		p.StartDate = patch.StartDate
	}
	if patch.Deadline != nil {
		p.Deadline = patch.Deadline
	}
	if patch.CompletedDate != nil {
		p.CompletedDate = patch.CompletedDate
	}
	if patch.Budget != nil {
		p.Budget = *patch.Budget
	}
	setString(&p.PaymentStatus, patch.PaymentStatus)
	if patch.AmountPaid != nil {
		p.AmountPaid = *patch.AmountPaid
	}
	if patch.Tasks != nil {
		p.Tasks = *patch.Tasks
	}
	if patch.Milestones != nil {
		p.Milestones = *patch.Milestones
	}
	if patch.CommunicationLogs != nil {
		p.CommunicationLogs = *patch.CommunicationLogs
	}
	if patch.Attachments != nil {
		p.Attachments = *patch.Attachments
	}
	if patch.Invoices != nil {
		p.Invoices = *patch.Invoices
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	setString(&p.Category, patch.Category)
	setString(&p.Notes, patch.Notes)
	setString(&p.Requirements, patch.Requirements)
	if patch.Deliverables != nil {
		p.Deliverables = *patch.Deliverables
	}

	p.Normalize(Stamp(now))
	if problems := p.problems(); len(problems) > 0 {
		return apperr.Validation(problems...)
	}
	return nil
}

// Normalize fills defaults, clamps progress, and fills sub-document defaults
func (p *Project) Normalize(now time.Time) {
	p.Name = strings.TrimSpace(p.Name)
	p.ClientID = strings.TrimSpace(p.ClientID)

	if p.Status == "" {
		p.Status = ProjectActive
	}
	if s, ok := canonical(projectStatuses, p.Status); ok {
		p.Status = s
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentPending
	}
	if s, ok := canonical(paymentStatuses, p.PaymentStatus); ok {
		p.PaymentStatus = s
	}
	if p.Platform == "" {
		p.Platform = PlatformDirect
	}
	if s, ok := canonical(projectPlatforms, p.Platform); ok {
		p.Platform = s
	}

	p.Progress = ClampProgress(p.Progress)

	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	for i := range p.Tasks {
		p.Tasks[i].normalize(now)
	}
	if p.Milestones == nil {
		p.Milestones = []Milestone{}
	}
	for i := range p.Milestones {
		p.Milestones[i].normalize(now)
	}
	if p.CommunicationLogs == nil {
		p.CommunicationLogs = []CommunicationLog{}
	}
	for i := range p.CommunicationLogs {
		p.CommunicationLogs[i].normalize(now)
	}
	if p.Attachments == nil {
		p.Attachments = []Attachment{}
	}
	for i := range p.Attachments {
		p.Attachments[i].normalize(now)
	}
	if p.Invoices == nil {
		p.Invoices = []string{}
	}
	p.Tags = uniqueStrings(p.Tags)
	if p.Deliverables == nil {
		p.Deliverables = []string{}
	}
}

// Validate reports every problem with the project
func (p *Project) Validate() error {
	if problems := p.problems(); len(problems) > 0 {
		return apperr.Validation(problems...)
	}
	return nil
}

func (p *Project) problems() []string {
	var out []string
	if p.Name == "" {
		out = append(out, "name is required")
	}
	if p.ClientID == "" {
		out = append(out, "client is required")
	}
	if p.StartDate == nil || p.StartDate.IsZero() {
		out = append(out, "startDate is required")
	}
	if p.Deadline == nil || p.Deadline.IsZero() {
		out = append(out, "deadline is required")
	}
	if p.Budget < 0 {
		out = append(out, "budget must be >= 0")
	}
	if p.AmountPaid < 0 {
		out = append(out, "amountPaid must be >= 0")
	}
	if !oneOf(projectStatuses, p.Status) {
		out = append(out, "status must be one of "+strings.Join(projectStatuses, ", "))
	}
	if !oneOf(paymentStatuses, p.PaymentStatus) {
		out = append(out, "paymentStatus must be one of "+strings.Join(paymentStatuses, ", "))
	}
	if !oneOf(projectPlatforms, p.Platform) {
		out = append(out, "platform must be one of "+strings.Join(projectPlatforms, ", "))
	}
	for i := range p.Tasks {
		out = append(out, p.Tasks[i].problems(i)...)
	}
	for i := range p.Milestones {
		out = append(out, p.Milestones[i].problems(i)...)
	}
	for i := range p.CommunicationLogs {
		out = append(out, p.CommunicationLogs[i].problems(i)...)
	}
	return out
}

// ClampProgress limits a progress value to [0, 100]
func ClampProgress(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
