package manifest

// SummaryManifest represents the structure of the summary YAML file.
// It gives a lightweight overview of one comparison run: timings, totals,
// and the status of every counted file.
type SummaryManifest struct {
	GeneratedAt       string        `yaml:"generated_at"`
	RunUUID           string        `yaml:"run_uuid"`
	Folder            string        `yaml:"folder"`
	FileSetHash       string        `yaml:"file_set_hash"`
	TotalFiles        int           `yaml:"total_files"`
	Successful        int           `yaml:"successful"`
	Failed            int           `yaml:"failed"`
	Workers           int           `yaml:"workers"`
	Strategy          string        `yaml:"strategy"`
	SequentialSeconds float64       `yaml:"sequential_seconds"`
	ParallelSeconds   float64       `yaml:"parallel_seconds"`
	Speedup           float64       `yaml:"speedup"`
	TotalWords        int           `yaml:"total_words"`
	TopFiles          []string      `yaml:"top_files,omitempty"`
	Results           []FileSummary `yaml:"results"`
}

// FileSummary represents summary information for a single file.
type FileSummary struct {
	Path         string `yaml:"path"`
	Status       string `yaml:"status"` // "success" or "error"
	ErrorMessage string `yaml:"error_message,omitempty"`
	SizeBytes    int64  `yaml:"size_bytes,omitempty"`
	WordCount    int    `yaml:"word_count,omitempty"`
}
