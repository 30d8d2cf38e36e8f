// Package config declares the options of the mock server that serves
// fixtures, and loads them from YAML or JSON files.
//
// The options are shapes only: the server that applies middlewares,
// pagination, proxies, throttlings and method overrides consumes them.
//
//	opts, err := config.LoadFromFile("fixtures.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A file looks like:
//
//	dataDir: data
//	middlewares: [cors, logger]
//	pagination:
//	  pageParam: _page
//	  limitParam: _limit
//	  defaultLimit: 10
//	proxies:
//	  - path: /api/payments/**
//	    target: ${PAYMENTS_URL:-http://localhost:9000}
//	throttlings:
//	  - method: GET
//	    path: /api/reports/*
//	    minDelay: 200
//	    maxDelay: 800
//	overrides:
//	  - path: /api/search
//	    from: POST
//	    to: GET
//
// ${VAR} and ${VAR:-default} are expanded from the environment before the
// file is parsed. Path fields are doublestar patterns.
package config
