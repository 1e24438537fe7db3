package model

import (
	"fmt"
	"strings"
	"time"
)

// Task statuses
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

var taskStatuses = []string{TaskPending, TaskInProgress, TaskCompleted}

// Communication log types
const (
	LogNote    = "note"
	LogMeeting = "meeting"
	LogEmail   = "email"
	LogCall    = "call"
)

var logTypes = []string{LogNote, LogMeeting, LogEmail, LogCall}

// Task is a unit of work embedded in a project
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	DueDate     *Date  `json:"dueDate,omitempty"`
	CompletedAt *Date  `json:"completedAt,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
}

// Milestone is a dated checkpoint embedded in a project
type Milestone struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     *Date  `json:"dueDate"`
	Completed   bool   `json:"completed"`
	CompletedAt *Date  `json:"completedAt,omitempty"`
}

// CommunicationLog records an exchange with the client
type CommunicationLog struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Content     string   `json:"content,omitempty"`
	Date        *Date    `json:"date"`
	Attachments []string `json:"attachments"`
}

// Attachment is a file reference embedded in a project
type Attachment struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Type       string `json:"type,omitempty"`
	UploadedAt *Date  `json:"uploadedAt"`
}

// normalize fills defaults. A completed task gets a completion time.
func (t *Task) normalize(now time.Time) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Status == "" {
		t.Status = TaskPending
	}
	t.Status = strings.ToLower(t.Status)
	if t.Status == TaskCompleted && t.CompletedAt == nil {
		t.CompletedAt = NewDate(now)
	}
}

func (t *Task) problems(i int) []string {
	var out []string
	if t.Title == "" {
		out = append(out, fmt.Sprintf("tasks[%d].title is required", i))
	}
	if !oneOf(taskStatuses, t.Status) {
		out = append(out, fmt.Sprintf("tasks[%d].status must be one of %s", i, strings.Join(taskStatuses, ", ")))
	}
	return out
}

func (m *Milestone) normalize(now time.Time) {
	m.Title = strings.TrimSpace(m.Title)
	if m.Completed && m.CompletedAt == nil {
		m.CompletedAt = NewDate(now)
	}
}

func (m *Milestone) problems(i int) []string {
	var out []string
	if m.Title == "" {
		out = append(out, fmt.Sprintf("milestones[%d].title is required", i))
	}
	if m.DueDate == nil || m.DueDate.IsZero() {
		out = append(out, fmt.Sprintf("milestones[%d].dueDate is required", i))
	}
	return out
}

func (l *CommunicationLog) normalize(now time.Time) {
	l.Title = strings.TrimSpace(l.Title)
	l.Type = strings.ToLower(strings.TrimSpace(l.Type))
	if l.Date == nil {
		l.Date = NewDate(now)
	}
	if l.Attachments == nil {
		l.Attachments = []string{}
	}
}

func (l *CommunicationLog) problems(i int) []string {
	var out []string
	if l.Type == "" {
		out = append(out, fmt.Sprintf("communicationLogs[%d].type is required", i))
	} else if !oneOf(logTypes, l.Type) {
		out = append(out, fmt.Sprintf("communicationLogs[%d].type must be one of %s", i, strings.Join(logTypes, ", ")))
	}
	if l.Title == "" {
		out = append(out, fmt.Sprintf("communicationLogs[%d].title is required", i))
	}
	return out
}

func (a *Attachment) normalize(now time.Time) {
	if a.UploadedAt == nil {
		a.UploadedAt = NewDate(now)
	}
}
