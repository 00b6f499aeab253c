package extract

import (
	"errors"

	"gobudget/internal/extracterror"
	"gobudget/internal/logging"
	"gobudget/internal/models"
)

// Pipeline tries each registered extractor against each raw row in priority
// order. The first extractor that succeeds wins; a row no extractor matches
// aborts the whole batch.
type Pipeline struct {
	extractors []Extractor
	logger     logging.Logger
}

// NewPipeline creates a pipeline with the built-in institution schemas
// registered in priority order.
func NewPipeline(logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{
		extractors: builtinExtractors(),
		logger:     logger,
	}
}

// Register appends an extractor at the lowest priority. Built-ins always
// come first.
func (p *Pipeline) Register(e Extractor) {
	p.extractors = append(p.extractors, e)
}

// Extract normalizes a batch of raw rows. Schema mismatches are contained:
// the pipeline simply advances to the next extractor. If no extractor
// matches a row it returns *UnrecognizedSchemaError and processes no further
// rows. Fixing that requires registering a new schema.
func (p *Pipeline) Extract(rows []models.RawRow) ([]models.ExtractedTransaction, error) {
	extracted := make([]models.ExtractedTransaction, 0, len(rows))

	for i, row := range rows {
		tx, ok := p.extractRow(row)
		if !ok {
			return nil, &extracterror.UnrecognizedSchemaError{RowIndex: i, Columns: len(row)}
		}
		extracted = append(extracted, tx)
	}

	p.logger.Info("Extracted transactions from raw rows",
		logging.Field{Key: "rows", Value: len(rows)},
		logging.Field{Key: "transactions", Value: len(extracted)})
	return extracted, nil
}

func (p *Pipeline) extractRow(row models.RawRow) (models.ExtractedTransaction, bool) {
	for _, extractor := range p.extractors {
		tx, err := extractor.Extract(row)
		if err == nil {
			return tx, true
		}

		var mismatch *extracterror.SchemaMismatchError
		if errors.As(err, &mismatch) {
			p.logger.Debug("Extractor did not match row",
				logging.Field{Key: "schema", Value: mismatch.SchemaID},
				logging.Field{Key: "reason", Value: mismatch.Reason})
			continue
		}

		// Extractors only fail with mismatches; anything else still means
		// "try the next one" but is worth surfacing louder.
		p.logger.WithError(err).Warn("Unexpected extractor failure",
			logging.Field{Key: "schema", Value: extractor.ID})
	}
	return models.ExtractedTransaction{}, false
}
