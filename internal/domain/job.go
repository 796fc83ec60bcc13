package domain

import "strings"

// Status represents the publication state of a job posting.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// IsValid checks if the status is one of the allowed values.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusClosed
}

// JobType represents where the work happens.
type JobType string

const (
	JobTypeRemote JobType = "remote"
	JobTypeOnsite JobType = "onsite"
)

// IsValid checks if the job type is one of the allowed values.
func (t JobType) IsValid() bool {
	return t == JobTypeRemote || t == JobTypeOnsite
}

// JobTime represents the working-hours commitment.
type JobTime string

const (
	JobTimePartTime JobTime = "part-time"
	JobTimeFullTime JobTime = "full-time"
)

// IsValid checks if the job time is one of the allowed values.
func (t JobTime) IsValid() bool {
	return t == JobTimePartTime || t == JobTimeFullTime
}

// JobRecord is a job posting as the jobs API stores it. The ID is
// server-assigned and immutable; required_skills travels as a single
// comma-joined string on the wire.
type JobRecord struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Status         Status  `json:"status"`
	JobType        JobType `json:"jobtype"`
	JobTime        JobTime `json:"jobtime"`
	RequiredSkills string  `json:"required_skills"`
	Domain         string  `json:"domain"`
}

// JobDraft is the body of a create or full-update request: a JobRecord
// without its server-assigned identity.
type JobDraft struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Status         Status  `json:"status"`
	JobType        JobType `json:"jobtype"`
	JobTime        JobTime `json:"jobtime"`
	RequiredSkills string  `json:"required_skills"`
	Domain         string  `json:"domain"`
}

// JobPatch is the body of a partial-update request. Only non-nil fields
// are sent and replaced.
type JobPatch struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Status         *Status  `json:"status,omitempty"`
	JobType        *JobType `json:"jobtype,omitempty"`
	JobTime        *JobTime `json:"jobtime,omitempty"`
	RequiredSkills *string  `json:"required_skills,omitempty"`
	Domain         *string  `json:"domain,omitempty"`
}

// JoinSkills encodes a skill list into the wire representation,
// e.g. ["SQL", "Python"] -> "SQL, Python".
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// SplitSkills decodes the wire representation into an ordered list of
// distinct skill names. Tokens are trimmed of surrounding whitespace;
// empty tokens are dropped; duplicates keep their first position.
// An empty or blank input yields nil.
func SplitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
