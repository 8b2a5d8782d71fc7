package leadio

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/entity"
)

const ExportFileName = "leads_report.csv"

var exportHeader = []string{
	"id", "client_name", "project_name", "email", "mobile", "site_address", "source",
	"priority", "status", "pipeline_status", "is_project", "budget", "created_at",
}

// WriteCSV schreibt eine Kopfzeile und eine Zeile pro Case, CRLF-terminiert.
// Zeilenumbrüche innerhalb von Feldern werden zu Leerzeichen, damit eine Zeile genau einem Case entspricht.
func WriteCSV(w io.Writer, cases []entity.CaseEntity) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, c := range cases {
		isProject := "false"
		if c.IsProject {
			isProject = "true"
		}
		record := []string{
			c.ID,
			flatten(c.ClientName),
			flatten(c.ProjectName),
			flatten(c.Email),
			flatten(c.Mobile),
			flatten(c.SiteAddress),
			flatten(c.Source),
			string(c.Priority),
			string(c.Status),
			string(entity.MapLegacyStatus(c.Status)),
			isProject,
			c.Budget.StringFixed(2),
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func flatten(s string) string {
	return lineBreaks.Replace(s)
}
