// Package config provides configuration management for the sheet evaluator.
//
// Configuration is loaded from environment variables and validated on startup.
// Redis and stream settings are only validated in worker mode.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
