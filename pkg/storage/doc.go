// Package storage handles the files mastodiary reads and writes.
//
// The storage package handles:
//   - Reading the HTML template
//   - Writing the rendered page with an atomic temp-file-and-rename
//
// Failures are reported as template_read and output_write errors from
// mastodiary/pkg/errors.
//
// Usage:
//
//	tmpl, err := storage.ReadTemplate("templates/diary.html")
//	if err != nil {
//	    return err
//	}
//
//	err = storage.WriteFileAtomic("posts.html", []byte(page))
package storage
