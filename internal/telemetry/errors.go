package telemetry

import "codeberg.org/mutker/amdsmictl/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("telemetry_invalid_db_path")

	// Collection Errors
	ErrSampleCollection = errors.ErrorCode("telemetry_sample_collection_failed")
	ErrInvalidSample    = errors.ErrorCode("telemetry_invalid_sample")

	// Storage Errors
	ErrStorageInit      = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageWrite     = errors.ErrorCode("telemetry_storage_write_failed")
	ErrSchemaInitFailed = errors.ErrorCode("telemetry_schema_init_failed")
	ErrSchemaMismatch   = errors.ErrorCode("telemetry_schema_mismatch")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("telemetry_operation_timeout")
	ErrServiceShutdown  = errors.ErrorCode("telemetry_service_shutdown_failed")
)
