package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/axiomhq/huffman"
)

func inspect(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	if _, err := loadConfig(ctx); err != nil {
		return err
	}
	path := ctx.Args().First()
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := huffman.ReadHeader(bufio.NewReader(f))
	if err != nil {
		return err
	}
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	renderHeader(ctx.App.Writer, h, fi.Size())
	return nil
}

// renderHeader prints a summary of h followed by its symbol table.
func renderHeader(w io.Writer, h *huffman.FileHeader, fileSize int64) {
	shortest, longest := h.CodeLengths()
	fmt.Fprintf(w, "File size:    %d\n", h.FileSize)
	fmt.Fprintf(w, "Symbols:      %d\n", len(h.Table))
	fmt.Fprintf(w, "Header:       %d bytes\n", h.Size())
	fmt.Fprintf(w, "Packed:       %d bytes\n", fileSize-int64(h.Size()))
	fmt.Fprintf(w, "Code lengths: %d..%d\n", shortest, longest)
	fmt.Fprintf(w, "Kraft sum:    %.6f\n", h.KraftSum())
	fmt.Fprintf(w, "Prefix free:  %t\n", h.PrefixFree())
	if len(h.Table) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Symbol", "Hex", "Length", "Code"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColWidth(huffman.MaxCodeLen + 2)
	for _, e := range h.Table {
		table.Append([]string{
			symbolString(e.Symbol),
			fmt.Sprintf("%#02x", e.Symbol),
			strconv.Itoa(int(e.Code.Length)),
			e.Code.String(),
		})
	}
	table.Render()
}

func symbolString(b byte) string {
	if b > ' ' && b < 0x7f {
		return string(rune(b))
	}
	return strconv.QuoteRune(rune(b))
}
