package git

import (
	"strings"
)

// Footer closes every commit message written by the notebook.
const Footer = "Managed-by: notebook"

// Commit types used for note history.
const (
	CommitTypeFeat     = "feat"
	CommitTypeFix      = "fix"
	CommitTypeRefactor = "refactor"
	CommitTypeChore    = "chore"
)

// FormatCommitMessage builds a Conventional Commit message:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Managed-by: notebook
func FormatCommitMessage(ctype, scope, subject, body string) string {
	var sb strings.Builder

	if ctype == "" {
		ctype = CommitTypeChore
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	if body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(body))
	}

	sb.WriteString("\n\n")
	sb.WriteString(Footer)

	return sb.String()
}

// CommitTypeFor picks the commit type for a change reason such as "add note #3".
func CommitTypeFor(reason string) string {
	verb, _, _ := strings.Cut(reason, " ")
	switch verb {
	case "add":
		return CommitTypeFeat
	case "edit", "archive":
		return CommitTypeRefactor
	default:
		return CommitTypeChore
	}
}
