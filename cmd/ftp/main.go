package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/debjordan/protocols-JOR/internal/ftp"
	"github.com/debjordan/protocols-JOR/internal/logger"
)

func main() {
	port := flag.Int("port", 21, "FTP control port.")
	timeout := flag.Duration("timeout", 10*time.Second, "Connection timeout.")
	logLevel := flag.String("loglevel", "WARN", "Log level: DEBUG, INFO, WARN, ERROR.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <server>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	appLogger, closeLogFile := logger.New("ftp.log", *logLevel)
	defer closeLogFile()

	addr := net.JoinHostPort(flag.Arg(0), strconv.Itoa(*port))
	client, err := ftp.Dial(addr, *timeout, appLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Connected to %s\n", addr)
	fmt.Println("Commands: login <user> <pass> | ls | get <file> | put <file> | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("ftp> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "login":
			if len(fields) != 3 {
				fmt.Println("usage: login <user> <pass>")
				continue
			}
			if err := client.Login(fields[1], fields[2]); err != nil {
				fmt.Printf("Login failed: %v\n", err)
			} else {
				fmt.Println("Logged in.")
			}
		case "ls":
			listing, err := client.List()
			if err != nil {
				fmt.Printf("List failed: %v\n", err)
				continue
			}
			fmt.Print(listing)
		case "get":
			if len(fields) != 2 {
				fmt.Println("usage: get <file>")
				continue
			}
			if err := download(client, fields[1]); err != nil {
				fmt.Printf("Download failed: %v\n", err)
			}
		case "put":
			if len(fields) != 2 {
				fmt.Println("usage: put <file>")
				continue
			}
			if err := upload(client, fields[1]); err != nil {
				fmt.Printf("Upload failed: %v\n", err)
			}
		case "quit":
			if err := client.Quit(); err != nil {
				fmt.Printf("Quit: %v\n", err)
			}
			return
		default:
			fmt.Printf("Unknown command %q\n", fields[0])
		}
	}
	client.Quit()
}

func download(client *ftp.Client, name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()
	n, err := client.Retr(name, file)
	if err != nil {
		return err
	}
	fmt.Printf("Downloaded %s (%d bytes)\n", name, n)
	return nil
}

func upload(client *ftp.Client, name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	n, err := client.Stor(name, file)
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %s (%d bytes)\n", name, n)
	return nil
}
