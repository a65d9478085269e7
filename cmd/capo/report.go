package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/fyrsmithlabs/capo/internal/compressor"
	"github.com/fyrsmithlabs/capo/internal/energy"
)

var (
	header  = color.New(color.FgCyan, color.Bold)
	passTag = color.New(color.FgGreen, color.Bold)
	failTag = color.New(color.FgRed, color.Bold)
	caution = color.New(color.FgYellow)
)

// printReport renders the metrics report and the compressed prompt, in the
// order: token accounting, quality verdict, energy balance, CO2 balance,
// compressed text, and a caution when the quality check failed.
func printReport(w io.Writer, res *compressor.Result, cost energy.Cost, rep energy.Report) {
	header.Fprintln(w, "\nCAPO Metrics:")
	fmt.Fprintf(w, "Original tokens: %d\n", res.OriginalTokens)
	fmt.Fprintf(w, "After rule-based (step 1) tokens: %d\n", res.CleanedTokens)
	fmt.Fprintf(w, "After smart reduction (step 2) tokens: %d\n", res.ReducedTokens)
	fmt.Fprintf(w, "After extractive (step 3) tokens: %d\n", res.CompressedTokens)
	fmt.Fprintf(w, "Tokens saved: %d\n", res.TokensSaved)
	if res.OriginalTokens > 0 {
		fmt.Fprintf(w, "Compression ratio: %.1f%%\n", res.CompressionRatio()*100)
	} else {
		fmt.Fprintln(w, "Compression ratio: N/A")
	}
	fmt.Fprintf(w, "Compression time: %.3f seconds\n", cost.Elapsed.Seconds())

	fmt.Fprintf(w, "\nSemantic Similarity: %.3f\n", res.Similarity)
	if res.Valid {
		passTag.Fprintln(w, "Quality Check: PASSED")
	} else {
		failTag.Fprintln(w, "Quality Check: FAILED (meaning may be lost)")
	}

	header.Fprintln(w, "\nEnergy Analysis:")
	fmt.Fprintf(w, "  LLM energy saved:        %.8f Wh\n", rep.LLMEnergySavedWh)
	fmt.Fprintf(w, "  Compression energy cost: %.8f Wh\n", rep.CompressionEnergyWh)
	fmt.Fprintf(w, "  NET energy saved:        %.8f Wh\n", rep.NetEnergySavedWh)

	header.Fprintf(w, "\nCO2 Analysis (Grid: %.1f gCO2eq/kWh):\n", rep.Intensity)
	fmt.Fprintf(w, "  LLM CO2 saved:        %.8f g\n", rep.LLMCO2SavedGrams)
	fmt.Fprintf(w, "  Compression CO2 cost: %.8f g\n", rep.CompressionCO2CostGrams)
	fmt.Fprintf(w, "  NET CO2 saved:        %.8f g\n", rep.NetCO2SavedGrams)

	header.Fprintln(w, "\nCompressed Prompt:")
	fmt.Fprintln(w, res.Compressed)

	if !res.Valid {
		caution.Fprintln(w, "\nWARNING: the compressed prompt may have lost important information.")
		caution.Fprintln(w, "Consider using the original or a less aggressive compression.")
	}
}
