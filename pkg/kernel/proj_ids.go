package kernel

import "strconv"

// JobID is assigned by the store on creation
type JobID int64

func (r JobID) String() string { return strconv.FormatInt(int64(r), 10) }
func (r JobID) IsEmpty() bool  { return r <= 0 }

// ParseJobID parses a decimal job id; zero and negatives are rejected
func ParseJobID(s string) (JobID, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return JobID(n), true
}
