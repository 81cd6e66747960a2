package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/coffeenme/coffeenme/internal/flagx"
	"github.com/coffeenme/coffeenme/internal/timex"
)

// JsonConfig is the DTO for JSON unmarshalling. Durations may be given as
// strings like "300ms" or as integer nanoseconds (see timex.Duration);
// values are copied into the runtime Config afterwards.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	StorePath      string         `json:"store_path"`
	LogFile        string         `json:"log_file"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SearchDebounce timex.Duration `json:"search_debounce"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. Absent flags mean no JSON is loaded. Read or unmarshal
// errors panic; the intended order is defaults -> parseJson -> parseFlags,
// later stages overriding earlier ones. Empty JSON fields leave the
// existing value alone.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SearchDebounce.Duration != 0 {
		cfg.SearchDebounce = time.Duration(jc.SearchDebounce.Duration)
	}
}
