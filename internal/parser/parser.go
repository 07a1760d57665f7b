package parser

import (
	"bufio"
	"encoding/csv"
	"net"
	"os"
	"strings"
)

// ParseHosts parses host input from a CIDR block, a file, or a
// comma-separated list of addresses/hostnames.
func ParseHosts(input string) ([]string, error) {
	if _, _, err := net.ParseCIDR(input); err == nil {
		return parseCIDR(input)
	}
	if fileExists(input) {
		return parseHostsFromFile(input)
	}
	// De-duplicate hosts from a comma-separated list.
	seen := make(map[string]bool)
	var hosts []string
	for _, host := range strings.Split(input, ",") {
		host = strings.TrimSpace(host)
		if host == "" || seen[host] {
			continue
		}
		seen[host] = true
		hosts = append(hosts, host)
	}
	return hosts, nil
}

// parseCIDR expands a CIDR block into individual IP addresses, excluding the
// network and broadcast addresses for anything larger than a /31.
func parseCIDR(cidr string) ([]string, error) {
	ip, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, err
	}
	var ips []string
	for ip := ip.Mask(ipnet.Mask); ipnet.Contains(ip); incIP(ip) {
		ips = append(ips, ip.String())
	}
	if len(ips) <= 2 { // /32 and /31
		return ips, nil
	}
	return ips[1 : len(ips)-1], nil
}

func incIP(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}

// parseHostsFromFile reads hosts from a CSV (first column, header skipped)
// or a plain text file (one host per line).
func parseHostsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var hosts []string
	if strings.HasSuffix(strings.ToLower(filePath), ".csv") {
		records, err := csv.NewReader(file).ReadAll()
		if err != nil {
			return nil, err
		}
		for i, record := range records {
			if i == 0 {
				continue // Skip header
			}
			if len(record) > 0 && record[0] != "" {
				hosts = append(hosts, record[0])
			}
		}
	} else {
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				hosts = append(hosts, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	return hosts, nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
