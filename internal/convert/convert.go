package convert

import (
	"fmt"
	"io"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kvesta/mdyml/pkg/model"
	"github.com/kvesta/mdyml/pkg/table"
)

// Source maps the rows of one upstream Markdown table into records.
type Source interface {
	// Name is the reporter written into every record.
	Name() string
	// Columns names the expected cells of a data row, in order.
	Columns() []string
	Header() table.HeaderFunc
	Map(row table.Row) model.SoftwareRecord
}

// Sources returns every known source keyed by name.
func Sources(now func() time.Time) map[string]Source {
	return map[string]Source{
		CisagovName: NewCisagov(now),
		NcscNLName:  NewNcscNL(now),
	}
}

// Names lists the keys of Sources in order.
func Names() []string {
	names := []string{}
	for name := range Sources(nil) {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Convert reads every matching table from r and maps its rows through src.
func Convert(r io.Reader, src Source, logger log.FieldLogger) ([]model.SoftwareRecord, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger = logger.WithField("source", src.Name())

	ex := table.NewExtractor(r, table.Options{
		Columns: len(src.Columns()),
		Header:  src.Header(),
		Logger:  logger,
	})

	records := []model.SoftwareRecord{}
	for ex.Next() {
		row := ex.Row()
		logger.Debugf("Processing line %d with %d columns", row.Line, len(row.Cells))
		records = append(records, src.Map(row))
	}

	if err := ex.Err(); err != nil {
		return nil, fmt.Errorf("read %s table: %w", src.Name(), err)
	}

	if ex.Tables() == 0 {
		logger.Warnf("No table with the expected header was found")
	}
	logger.Infof("Converted %d rows, skipped %d", len(records), ex.Dropped())

	return records, nil
}
