package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Conversion queries

//go:embed sql/insert_conversion.sql
var InsertConversionSQL string

//go:embed sql/mark_conversion_complete.sql
var MarkConversionCompleteSQL string

//go:embed sql/mark_conversion_error.sql
var MarkConversionErrorSQL string

//go:embed sql/select_conversions.sql
var SelectConversionsSQL string

//go:embed sql/select_conversion_by_id.sql
var SelectConversionByIDSQL string
