// Package config loads shelf's configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/shelf/config.toml
//  3. If the file doesn't exist, start from empty values
//  4. Apply SHELF_* environment variables on top
//  5. Fill anything still empty with defaults
//
// # TOML Format
//
//	api_base_url    = "https://api.escuelajs.co/api/v1"
//	request_timeout = "10s"
//	page_size       = 10
//	settle_delay    = "1.5s"
//	log_file        = "~/.local/share/shelf/shelf.log"
//	log_level       = "info"
//	metrics_addr    = ""          # e.g. ":9100"; empty disables /metrics
//
//	[mirror]
//	backend    = "file"           # or "redis"
//	path       = "~/.local/share/shelf/platzi_products_data.json"
//	redis_addr = "127.0.0.1:6379"
//	key        = "platzi_products_data"
//
// Every field is optional. Environment overrides use the upper-cased field
// name with a SHELF_ prefix (SHELF_PAGE_SIZE, SHELF_MIRROR_BACKEND, ...).
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML, unparsable or
// negative durations and unknown mirror backends. A missing file is not an
// error, so shelf works without any configuration.
package config
