// Package localstorage is the client's browser-style key/value store: string
// slots addressed by string keys, persisted in SQLite.
//
// The session cache and the upload history both live here, each under its
// own key. Values are opaque strings; callers encode JSON themselves.
//
//	repo := localstorage.NewSQLiteRepository(db)
//	_ = repo.SetItem(ctx, "uploadedFiles", "[]")
//	v, ok, _ := repo.GetItem(ctx, "uploadedFiles")
package localstorage
