package escpos

// Stripe merging.
//
// Band commands are height-limited (8/16/24 dots), so a tall image arrives
// as consecutive ESC * commands of identical width and mode, each followed
// by a line feed that advances the paper one band. mergeStripes reassembles
// such runs into a single command carrying the full-height bitmap.

// mergeStripes fuses maximal runs of adjacent same-width/same-mode band
// commands. Line feeds interleaved with a merged run are band-advance
// transport, not content, and are absorbed along with the stripes (including
// the feed that trails the final stripe). Runs of length 1 are untouched.
func mergeStripes(cmds []Command) []Command {
	out := make([]Command, 0, len(cmds))
	for i := 0; i < len(cmds); i++ {
		if cmds[i].Kind != KindBitImage {
			out = append(out, cmds[i])
			continue
		}

		stripes := []int{i}
		j := i + 1
		lastStripe := i
		for j < len(cmds) {
			if cmds[j].Kind == KindLineFeed {
				j++
				continue
			}
			if cmds[j].Kind == KindBitImage &&
				cmds[j].Params["width"] == cmds[i].Params["width"] &&
				cmds[j].Params["mode"] == cmds[i].Params["mode"] {
				stripes = append(stripes, j)
				lastStripe = j
				j++
				continue
			}
			break
		}

		if len(stripes) == 1 {
			out = append(out, cmds[i])
			continue
		}

		merged := mergeRun(cmds, stripes)
		out = append(out, merged)

		// Skip everything through the last stripe, plus the single
		// band-advance feed that trails it, if present.
		i = lastStripe
		if i+1 < len(cmds) && cmds[i+1].Kind == KindLineFeed {
			i++
		}
	}
	return out
}

// mergeRun builds one command from the stripe commands at the given indexes.
// The combined raw buffer is assembled column by column: for each column,
// that column's bytes from stripe 0, then stripe 1, and so on (vertical
// concatenation, not byte-level interleaving). The band decoder then runs
// once over the combined buffer.
func mergeRun(cmds []Command, stripes []int) Command {
	first := cmds[stripes[0]]
	last := cmds[stripes[len(stripes)-1]]
	width := first.Params["width"].(int)
	mode := byte(first.Params["mode"].(int))
	bpc, _, _ := BandGeometry(mode)

	combinedBPC := bpc * len(stripes)
	combined := make([]byte, 0, width*combinedBPC)
	for x := 0; x < width; x++ {
		for _, si := range stripes {
			raw := cmds[si].raw
			combined = append(combined, raw[x*bpc:(x+1)*bpc]...)
		}
	}

	merged := Command{
		Kind: KindBitImage,
		Span: Span{Start: first.Span.Start, End: last.Span.End},
		Params: map[string]any{
			"mode":    first.Params["mode"],
			"width":   width,
			"stripes": len(stripes),
		},
		Bitmap: DecodeBand(width, combinedBPC, combined),
		raw:    combined,
	}
	merged.Call = renderCall(&merged)
	return merged
}
