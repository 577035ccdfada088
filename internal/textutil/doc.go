// Package textutil provides filename sanitation helpers shared by the
// transcript, notes, and summarizer stages.
package textutil
