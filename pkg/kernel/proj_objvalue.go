package kernel

import "strings"

// BucketURL is a public URL (or key) of an object in the file store
type BucketURL string

func (b BucketURL) String() string { return string(b) }
func (b BucketURL) IsEmpty() bool  { return strings.TrimSpace(string(b)) == "" }

type Email string

func (e Email) String() string { return string(e) }
