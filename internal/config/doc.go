// Package config loads vango-ssr project configuration.
//
// The configuration lives in vango-ssr.json or vango-ssr.yaml at the project
// root. Every field is optional; missing values take defaults and a missing
// file yields the default configuration.
//
// # Configuration File Structure
//
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	cache:
//	  backend: redis      # memory | redis | none
//	  ttl: 10m
//	  redis:
//	    addr: localhost:6379
//	serializer:
//	  pretty: false
//	  indent: "  "
//	log:
//	  level: debug        # debug | info | warn | error
//	  format: json        # text | json
//	publish:
//	  s3:
//	    region: eu-west-1
//	    endpoint: http://localhost:9000
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Log.NewLogger(os.Stderr)
package config
