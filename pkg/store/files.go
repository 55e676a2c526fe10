package store

import "strconv"

// RunDirLayout is the time layout of run directory names (YYYYMMDDHHMMSS).
const RunDirLayout = "20060102150405"

// IterationFiles contains the filenames written for one 1-based iteration.
type IterationFiles struct {
	Answer   string // e.g. "response_3.txt"
	Question string // e.g. "generated_question_3.txt"
}

// FilesFor returns the filenames for iteration n.
// The answer and the question derived from it share n.
func FilesFor(n int) IterationFiles {
	s := strconv.Itoa(n)
	return IterationFiles{
		Answer:   "response_" + s + ".txt",
		Question: "generated_question_" + s + ".txt",
	}
}
