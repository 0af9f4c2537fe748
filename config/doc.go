// Package config loads micscribe configuration with Viper.
//
// Values come from, in increasing priority: registered defaults, a
// config.yml found next to the binary or passed explicitly, a .env file
// loaded with godotenv, and the process environment. Environment keys use
// the MICSCRIBE_ prefix with underscores for nesting
// (MICSCRIBE_SUPABASE_ANON_KEY -> supabase.anon_key).
package config
