package main

import "github.com/yorozuya-cybersecurity/yorosec-export/pkg/cli"

func main() {
	cli.Execute()
}
