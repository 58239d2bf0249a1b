package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quotedeck/quotedeck/internal/batch"
	"github.com/quotedeck/quotedeck/internal/docreader"
	"github.com/quotedeck/quotedeck/internal/excel"
	"github.com/quotedeck/quotedeck/internal/pipeline"
	"github.com/quotedeck/quotedeck/internal/report"
)

const maxUploadBytes = 64 << 20 // 64 MiB across the whole batch

const outputFileName = "merged_output.xlsx"

const digestFileName = "quote_digest.docx"

// generateExcel accepts a batch of transcripts plus the interviewer
// name and responds with the merged spreadsheet. Per-file failures are
// absorbed into diagnostics; the only user-visible failure is a batch
// that produced nothing to export.
func (s *Server) generateExcel(w http.ResponseWriter, r *http.Request) {
	batchID := uuid.New().String()
	log := s.logger.With("batch_id", batchID)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	interviewer := strings.TrimSpace(r.FormValue("interviewer"))
	if interviewer == "" {
		http.Error(w, "interviewer name is required", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}

	var docs []batch.Document
	var parseDiags []pipeline.Diagnostic
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "" || name == "." || !docreader.Supported(name) {
			parseDiags = append(parseDiags, pipeline.Diagnostic{
				File:   fh.Filename,
				Kind:   pipeline.DiagParseFailure,
				Detail: "unsupported or missing file name",
			})
			continue
		}

		lines, err := s.readUpload(batchID, name, fh)
		if err != nil {
			log.Warn("upload unreadable", "file", name, "error", err)
			parseDiags = append(parseDiags, pipeline.Diagnostic{
				File:   name,
				Kind:   pipeline.DiagParseFailure,
				Detail: err.Error(),
			})
			continue
		}
		docs = append(docs, batch.Document{Name: name, Lines: lines})
	}

	log.Info("batch received", "files", len(files), "readable", len(docs), "interviewer", interviewer)

	rows, diags, err := s.runBatch(r.Context(), interviewer, docs)
	diags = append(parseDiags, diags...)
	for _, d := range diags {
		log.Warn("diagnostic", "file", d.File, "kind", string(d.Kind), "detail", d.Detail)
	}

	if err != nil {
		if errors.Is(err, batch.ErrEmptyBatch) || len(docs) == 0 {
			http.Error(w, "no quotes could be extracted from the provided files", http.StatusBadRequest)
			return
		}
		log.Error("batch failed", "error", err)
		http.Error(w, "processing failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := excel.Write(rows, &buf); err != nil {
		log.Error("spreadsheet render failed", "error", err)
		http.Error(w, "failed to render spreadsheet", http.StatusInternalServerError)
		return
	}

	// Keep a copy (and optionally the digest) in the output dir.
	if s.outputDir != "" {
		outPath := filepath.Join(s.outputDir, outputFileName)
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			log.Warn("failed to store output copy", "path", outPath, "error", err)
		}
		if s.writeDigest {
			digestPath := filepath.Join(s.outputDir, digestFileName)
			if err := report.WriteDigest(digestPath, rows); err != nil {
				log.Warn("failed to write digest", "path", digestPath, "error", err)
			}
		}
	}

	log.Info("batch exported", "rows", len(rows), "diagnostics", len(diags))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputFileName))
	w.Header().Set("X-Quotedeck-Rows", strconv.Itoa(len(rows)))
	w.Header().Set("X-Quotedeck-Diagnostics", strconv.Itoa(len(diags)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error("failed to write response", "error", err)
	}
}

// readUpload stores the part under a unique name in the upload dir and
// extracts its lines.
func (s *Server) readUpload(batchID, name string, fh *multipart.FileHeader) ([]string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.uploadDir, batchID+"_"+name)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	return docreader.ExtractLines(path)
}
