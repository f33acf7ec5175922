// Package dataset loads application and extracted record files for batch
// comparison. Files may be JSONL or Parquet; rows are keyed to each other by
// application identifier.
package dataset

import "github.com/ttb-review/labelcheck/internal/compare"

// ApplicationRow is one submitted application in a dataset file.
type ApplicationRow struct {
	ID                string `json:"id" parquet:"id"` // Primary key
	BrandName         string `json:"brand_name" parquet:"brand_name"`
	ClassType         string `json:"class_type" parquet:"class_type"`
	AlcoholContent    string `json:"alcohol_content" parquet:"alcohol_content"`
	NetContents       string `json:"net_contents" parquet:"net_contents"`
	GovernmentWarning string `json:"government_warning" parquet:"government_warning"`
	BottlerName       string `json:"bottler_name" parquet:"bottler_name"`
	BottlerAddress    string `json:"bottler_address" parquet:"bottler_address"`
	CountryOfOrigin   string `json:"country_of_origin" parquet:"country_of_origin"`
	ProductType       string `json:"product_type" parquet:"product_type"`
	SourceType        string `json:"source_type" parquet:"source_type"`
}

// ExtractedRow is the merged OCR/LLM output for one label, keyed to its
// application. Confidence holds the upstream extraction confidence per field
// name, in [0,1].
type ExtractedRow struct {
	ID                string             `json:"id" parquet:"id"`
	BrandName         string             `json:"brand_name" parquet:"brand_name"`
	ClassType         string             `json:"class_type" parquet:"class_type"`
	AlcoholContent    string             `json:"alcohol_content" parquet:"alcohol_content"`
	NetContents       string             `json:"net_contents" parquet:"net_contents"`
	GovernmentWarning string             `json:"government_warning" parquet:"government_warning"`
	BottlerName       string             `json:"bottler_name" parquet:"bottler_name"`
	BottlerAddress    string             `json:"bottler_address" parquet:"bottler_address"`
	CountryOfOrigin   string             `json:"country_of_origin" parquet:"country_of_origin"`
	Confidence        map[string]float64 `json:"confidence" parquet:"confidence"`
}

// Record converts a row to the engine's application record.
func (r ApplicationRow) Record() compare.ApplicationRecord {
	return compare.ApplicationRecord{
		ID:                r.ID,
		BrandName:         r.BrandName,
		ClassType:         r.ClassType,
		AlcoholContent:    r.AlcoholContent,
		NetContents:       r.NetContents,
		GovernmentWarning: r.GovernmentWarning,
		BottlerName:       r.BottlerName,
		BottlerAddress:    r.BottlerAddress,
		CountryOfOrigin:   r.CountryOfOrigin,
		ProductType:       r.ProductType,
		SourceType:        r.SourceType,
	}
}

// Record converts a row to the engine's extracted record. Confidence entries
// with unknown field names are dropped; they carry no comparison meaning.
func (r ExtractedRow) Record() compare.ExtractedRecord {
	record := compare.ExtractedRecord{
		BrandName:         r.BrandName,
		ClassType:         r.ClassType,
		AlcoholContent:    r.AlcoholContent,
		NetContents:       r.NetContents,
		GovernmentWarning: r.GovernmentWarning,
		BottlerName:       r.BottlerName,
		BottlerAddress:    r.BottlerAddress,
		CountryOfOrigin:   r.CountryOfOrigin,
	}

	for name, score := range r.Confidence {
		ft, err := compare.ParseFieldType(name)
		if err != nil {
			continue
		}
		if record.Confidence == nil {
			record.Confidence = make(map[compare.FieldType]float64, len(r.Confidence))
		}
		record.Confidence[ft] = score
	}

	return record
}

// IndexExtracted builds the identifier-keyed map the batch comparison
// consumes. When an identifier repeats, the last row wins.
func IndexExtracted(rows []ExtractedRow) map[string]compare.ExtractedRecord {
	index := make(map[string]compare.ExtractedRecord, len(rows))
	for _, row := range rows {
		index[row.ID] = row.Record()
	}
	return index
}

// Applications converts rows to engine records, preserving file order.
func Applications(rows []ApplicationRow) []compare.ApplicationRecord {
	records := make([]compare.ApplicationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	return records
}
