package count

// FileOutput is the structured output for a single file.
type FileOutput struct {
	Path   string `json:"path" yaml:"path"`
	Status string `json:"status" yaml:"status"`
	Words  int    `json:"words,omitempty" yaml:"words,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Stats provides summary statistics for a comparison run.
type Stats struct {
	RunUUID           string   `json:"run_uuid" yaml:"run_uuid"`
	RunID             int64    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Folder            string   `json:"folder" yaml:"folder"`
	TotalFiles        int      `json:"total_files" yaml:"total_files"`
	Failed            int      `json:"failed" yaml:"failed"`
	TotalBytes        int64    `json:"total_bytes" yaml:"total_bytes"`
	Workers           int      `json:"workers" yaml:"workers"`
	Strategy          string   `json:"strategy" yaml:"strategy"`
	SequentialSeconds float64  `json:"sequential_seconds" yaml:"sequential_seconds"`
	ParallelSeconds   float64  `json:"parallel_seconds" yaml:"parallel_seconds"`
	Speedup           float64  `json:"speedup" yaml:"speedup"`
	SequentialWords   int      `json:"sequential_words" yaml:"sequential_words"`
	ParallelWords     int      `json:"parallel_words" yaml:"parallel_words"`
	Equivalent        bool     `json:"equivalent" yaml:"equivalent"`
	TopFiles          []string `json:"top_files,omitempty" yaml:"top_files,omitempty"`
}

// FinalOutput is the structured output for the entire run.
type FinalOutput struct {
	Status string       `json:"status" yaml:"status"`
	Files  []FileOutput `json:"files" yaml:"files"`
	Stats  Stats        `json:"stats" yaml:"stats"`
}

// PassOutput is the structured output of a single counting pass.
type PassOutput struct {
	Mode       string       `json:"mode" yaml:"mode"`
	Folder     string       `json:"folder" yaml:"folder"`
	Workers    int          `json:"workers,omitempty" yaml:"workers,omitempty"`
	Strategy   string       `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Seconds    float64      `json:"seconds" yaml:"seconds"`
	TotalWords int          `json:"total_words" yaml:"total_words"`
	Failed     int          `json:"failed" yaml:"failed"`
	Files      []FileOutput `json:"files" yaml:"files"`
}
