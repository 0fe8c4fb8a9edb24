package response

import (
	"fmt"
	"io"
	"net/http"
)

// WriteCSV streams a CSV attachment. Headers are committed before write runs,
// so a failure part-way through can only be logged by the caller.
func WriteCSV(w http.ResponseWriter, filename string, write func(io.Writer) error) error {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	return write(w)
}
