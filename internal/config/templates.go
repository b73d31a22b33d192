package config

import (
	"io"
)

// configTemplate documents every setting with its default value.
const configTemplate = `# Stock Trading Simulator Configuration
# Place this file at ~/.config/simtrader/config.toml or pass --config.

[market]
# Maximum absolute price move per "Update Market Prices", in percent
volatility_percent = 5.0
# Seed for the price generator; 0 picks a random seed on every run
seed = 0

[[market.stocks]]
symbol = "AAPL"
name = "Apple Inc."
price = 175.50

[[market.stocks]]
symbol = "GOOGL"
name = "Google"
price = 140.25

[[market.stocks]]
symbol = "MSFT"
name = "Microsoft"
price = 380.75

[[market.stocks]]
symbol = "TSLA"
name = "Tesla"
price = 245.00

[[market.stocks]]
symbol = "AMZN"
name = "Amazon"
price = 178.30

[ui]
# Enable colored output
color_enabled = true
# Display currency (ISO 4217, two fraction digits)
currency = "USD"

[logging]
# Diagnostic log level: debug, info, warn, error
level = "warn"
# Also write logs to a rotating file
file = false
file_path = "~/.config/simtrader/logs/simtrader.log"
# Rotation: size in MB, number of old files, age in days
max_size = 10
max_backups = 3
max_age = 14
`

// WriteTemplate writes the documented example configuration to w.
func WriteTemplate(w io.Writer) error {
	_, err := io.WriteString(w, configTemplate)
	return err
}
