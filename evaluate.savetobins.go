package gem

// saveResultBins dumps a realization's annual series to flat binary files.
func saveResultBins(res Result, outdirprfx string) {
	writeFloats(outdirprfx+"vol.bin", res.Vol)
	writeFloats(outdirprfx+"area.bin", res.Area)
	writeFloats(outdirprfx+"mb.bin", res.Wide)
	writeFloats(outdirprfx+"ela.bin", res.Elas)
	writeFloats(outdirprfx+"thick.bin", res.Thick)
}

// saveToBins adds the year axis and the year-major geometry panels to the
// series dumps.
func (e *Ensemble) saveToBins(res Result, d *Diagnostics, outdirprfx string) {
	saveResultBins(res, outdirprfx)

	yrs := make([]int32, len(res.Vol))
	for k := range yrs {
		yrs[k] = int32(e.Cfg.StartYear + k)
	}
	writeInts(outdirprfx+"years.bin", yrs)

	writeFloats(outdirprfx+"binthick.bin", flatten(d.BinThick))
	writeFloats(outdirprfx+"binarea.bin", flatten(d.BinArea))
	writeFloats(outdirprfx+"binwidth.bin", flatten(d.BinWidth))
}
