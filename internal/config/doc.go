// Package config loads the dccapacity configuration file and watches input
// files for changes.
//
// Top-level types:
//   - Config{Capacity, Limits, Output, Log}: full config tree parsed from YAML
//   - CapacityConfig: max_group_rps, unit_weight, presence_weight,
//     variant (detailed|presence|simple)
//   - LimitsConfig: max_groups, max_machines sanity ceilings
//   - OutputConfig: format (table|detailed|json|prometheus)
//   - LogConfig: level (debug|info|warn|error), format (text|json)
//
// Load(path) reads the YAML file, applies defaults (100 rps per group, 1000
// unit weight, 0.0001 presence weight, detailed variant, 1000×1000 limits,
// table output, warn/text logging), then validates every enum and range.
// Default() returns the same defaults without a file.
//
// Watch(ctx, path, onChange) uses fsnotify on the file's parent directory and
// calls onChange whenever the file is written or re-created.
package config
