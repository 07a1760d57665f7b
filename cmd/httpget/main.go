package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/debjordan/protocols-JOR/internal/httpclient"
	"github.com/debjordan/protocols-JOR/internal/logger"
)

// headerFlags collects repeated -header "Key: Value" flags.
type headerFlags map[string]string

func (h headerFlags) String() string { return fmt.Sprintf("%v", map[string]string(h)) }

func (h headerFlags) Set(value string) error {
	key, val, ok := strings.Cut(value, ":")
	if !ok {
		return fmt.Errorf("header must be of the form 'Key: Value', got %q", value)
	}
	h[strings.TrimSpace(key)] = strings.TrimSpace(val)
	return nil
}

func main() {
	headers := headerFlags{}
	method := flag.String("method", "GET", "HTTP method.")
	data := flag.String("data", "", "Request body. Implies POST unless -method is set.")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout.")
	logLevel := flag.String("loglevel", "WARN", "Log level: DEBUG, INFO, WARN, ERROR.")
	flag.Var(headers, "header", "Extra request header 'Key: Value' (repeatable).")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <URL>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	appLogger, closeLogFile := logger.New("http.log", *logLevel)
	defer closeLogFile()

	reqMethod := strings.ToUpper(*method)
	var body []byte
	if *data != "" {
		body = []byte(*data)
		if reqMethod == "GET" {
			reqMethod = "POST"
		}
	}

	client := httpclient.New(*timeout, appLogger)
	resp, err := client.Do(reqMethod, flag.Arg(0), headers, body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s %d %s\n", resp.Proto, resp.StatusCode, resp.Status)
	keys := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range resp.Header[k] {
			fmt.Printf("%s: %s\n", k, v)
		}
	}
	fmt.Println()
	os.Stdout.Write(resp.Body)

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
