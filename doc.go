// Package notebook is the composition root of the notebook note manager.
//
// It connects the domain (pkg/core) with the storage adapters (pkg/adapters)
// using the Hexagonal Architecture pattern. The domain holds notes with a
// category, a priority, tags and an active/archived status; the adapters
// persist the whole collection as a JSON or YAML file, optionally versioned
// with Git, or in an embedded SQLite database.
//
// Features:
//
//   - **Hexagonal Architecture**: the domain never touches files or SQL.
//   - **Atomic Saves**: the flat file is replaced through a temp file and rename.
//   - **Soft Loading**: malformed records are skipped and logged, or rejected in strict mode.
//   - **ID Policies**: "max" reuses the id of a deleted newest note, "sequence" never reuses.
//   - **Optional Git History**: every change becomes a Conventional Commit.
//
// Usage:
//
//	svc, err := notebook.New("Notes.json",
//		notebook.WithIDPolicy(core.IDPolicySequence),
//		notebook.WithLogger(logger),
//	)
//
//	note, err := svc.AddNote(ctx, core.AddInput{Title: "Groceries", Category: "shopping"})
package notebook
