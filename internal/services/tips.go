package services

import "math/rand"

// CodingTip is one entry in the dashboard tips feed.
type CodingTip struct {
	Title       string `json:"title"`
	Description string `json:"desc"`
}

var codingTips = []CodingTip{
	{"Write Readable Code", "Always write code as if the next person to maintain it is a violent psychopath who knows where you live."},
	{"Use Version Control", "Commit early and often. Small, frequent commits make it easier to track changes and revert if needed."},
	{"Test Your Code", "Write tests before you write the code (TDD). It helps clarify requirements and prevents bugs."},
	{"Keep Functions Small", "Functions should do one thing and do it well. If it's doing multiple things, split it up."},
	{"Use Meaningful Names", "Variable and function names should reveal intent. Avoid abbreviations and single-letter names."},
	{"Document Your Code", "Write comments that explain why, not what. The code should be self-explanatory for the what."},
	{"Refactor Regularly", "Don't let technical debt accumulate. Refactor code as you work on it."},
	{"Learn Debugging Tools", "Master your IDE's debugging features. It will save you hours of debugging time."},
	{"Code Review", "Always have someone else review your code. Fresh eyes catch things you might miss."},
	{"Stay Updated", "Keep learning new technologies and best practices, but don't chase every new trend."},
	{"Error Handling", "Always handle errors gracefully. Don't let your application crash unexpectedly."},
	{"Performance Matters", "Write efficient code, but don't optimize prematurely. Focus on readability first."},
}

// RandomTips returns n distinct tips for the dashboard sidebar.
func RandomTips(n int) []CodingTip {
	if n <= 0 {
		return nil
	}
	if n > len(codingTips) {
		n = len(codingTips)
	}
	perm := rand.Perm(len(codingTips))
	out := make([]CodingTip, 0, n)
	for _, i := range perm[:n] {
		out = append(out, codingTips[i])
	}
	return out
}
