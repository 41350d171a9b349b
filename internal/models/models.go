package models

import "time"

// Session represents a worksheet generation session
type Session struct {
	ID        string            `json:"id"`
	Images    []Image           `json:"images"`
	Result    *GenerationResult `json:"result,omitempty"`
	Provider  string            `json:"provider,omitempty"`
	Model     string            `json:"model,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Image represents an uploaded, pasted or fetched problem image
type Image struct {
	ID       string `json:"id"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Source   string `json:"source"` // "upload", "paste", "url", "file"
	Size     int    `json:"size"`
}

// Sections holds the three named parts of a model reply
type Sections struct {
	Preamble  string `json:"preamble,omitempty"`
	Problems  string `json:"problems"`
	Solutions string `json:"solutions"`
	Guide     string `json:"guide"`
}

// GenerationResult is the text returned by the model together with its split sections
type GenerationResult struct {
	Text        string        `json:"text"`
	Sections    Sections      `json:"sections"`
	Provider    string        `json:"provider"`
	Model       string        `json:"model"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

// Settings are the persisted user preferences
type Settings struct {
	APIKey         string `json:"api_key" yaml:"api_key"`
	Provider       string `json:"provider" yaml:"provider"`
	Model          string `json:"model" yaml:"model"`
	StudentName    string `json:"student_name" yaml:"student_name"`
	InstructorName string `json:"instructor_name" yaml:"instructor_name"`
}

// Masked returns a copy of s that is safe to send to a browser
func (s Settings) Masked() Settings {
	if len(s.APIKey) > 4 {
		s.APIKey = "****" + s.APIKey[len(s.APIKey)-4:]
	} else if s.APIKey != "" {
		s.APIKey = "****"
	}
	return s
}

// SavedSheet is a snapshot of a generated worksheet
type SavedSheet struct {
	ID             string    `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	StudentName    string    `json:"student_name" yaml:"student_name"`
	InstructorName string    `json:"instructor_name" yaml:"instructor_name"`
	Date           string    `json:"date" yaml:"date"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	Result         string    `json:"result" yaml:"result"`
}
