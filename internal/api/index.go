package api

import "net/http"

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Quotedeck</title>
  <style>
    body { font-family: sans-serif; max-width: 40rem; margin: 3rem auto; padding: 0 1rem; }
    form { border: 2px dashed #999; border-radius: 8px; padding: 2rem; }
    label { display: block; margin-bottom: 1rem; }
    input[type="text"] { width: 100%; padding: 0.4rem; }
    button { padding: 0.5rem 1.5rem; }
    .hint { color: #666; font-size: 0.85rem; }
  </style>
</head>
<body>
  <h1>Quotedeck</h1>
  <p>Upload interview transcripts (.docx or .txt) and download a merged
  spreadsheet of corrected, categorized quotes.</p>
  <form action="/generate_excel" method="post" enctype="multipart/form-data">
    <label>Interviewer name
      <input type="text" name="interviewer" placeholder="e.g. Alex" required>
    </label>
    <label>Transcript files
      <input type="file" name="files" accept=".docx,.txt" multiple required>
    </label>
    <button type="submit">Generate spreadsheet</button>
    <p class="hint">The interviewer's turns are removed before quotes are extracted.</p>
  </form>
</body>
</html>
`

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexPage))
}
