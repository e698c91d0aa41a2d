package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// printResponse prints the server's response. List replies are drawn as a
// table.
func printResponse(w io.Writer, command string, response map[string]interface{}) {
	switch response["status"] {
	case "OK":
		if message, ok := response["message"].(string); ok {
			fmt.Fprintln(w, "Server:", message)
		} else if values, ok := response["value"].([]interface{}); ok {
			renderList(w, command, values)
		} else if value, ok := response["value"]; ok {
			fmt.Fprintln(w, "Server:", value)
		} else {
			fmt.Fprintln(w, "Server: OK")
		}
	case "ERROR":
		fmt.Fprintf(w, "Server Error (%v): %v\n", response["kind"], response["message"])
	default:
		fmt.Fprintln(w, "Unexpected server response:", response)
	}
}

func renderList(w io.Writer, command string, values []interface{}) {
	if len(values) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}

	header := "VALUE"
	if command == "KEYS" {
		header = "KEY"
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{strconv.Itoa(i), fmt.Sprint(v)}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", header})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
}
