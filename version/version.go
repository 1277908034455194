package version

import "fmt"

var GitCommit string
var GitTag string

func String() string {
	tag := GitTag
	if tag == "" {
		tag = "dev"
	}
	if GitCommit == "" {
		return fmt.Sprintf("ndeftool %s", tag)
	}
	return fmt.Sprintf("ndeftool %s (%s)", tag, GitCommit)
}
