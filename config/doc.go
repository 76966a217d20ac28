// Package config loads conversion settings from YAML, with CITYSOLID_*
// environment overrides read from the process and optional .env files.
//
// Example file:
//
//	precision_mode: high
//	shape_fix_level: aggressive
//	sew_tolerance: 0        # 0 derives the tolerance per building
//	workers: 8
//	invalid_face_ratio_threshold: 0.5
//	resew_relax_multiplier: 10
//	log_file: ${HOME}/citysolid.log
//	metrics_namespace: citysolid
//
// Load expands ${VAR} references before decoding. Validate checks the
// struct tags with go-playground/validator.
package config
