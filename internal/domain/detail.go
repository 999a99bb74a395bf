package domain

// YearCount is one row of a county's per-year breakdown.
type YearCount struct {
	Year     string `json:"year"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Detail is the per-year breakdown shown for a hovered or selected county.
type Detail struct {
	ID    FeatureID   `json:"id"`
	Name  string      `json:"name"`
	Label string      `json:"label"`
	Years []YearCount `json:"years"`
	Total int         `json:"total"`
}

// CountyDetail returns the catalogue-ordered breakdown for id. Total only
// counts the selected years.
func CountyDetail(ix *FeatureIndex, id FeatureID, years YearSet) (Detail, error) {
	f, ok := ix.Get(id)
	if !ok {
		return Detail{}, ErrUnknownFeature
	}

	d := Detail{
		ID:    f.ID,
		Name:  f.Name,
		Label: f.Name + " County",
		Years: make([]YearCount, 0, len(Years)),
	}
	for _, y := range Years {
		yc := YearCount{Year: y, Count: f.Count(y), Selected: years.Contains(y)}
		if yc.Selected {
			d.Total += yc.Count
		}
		d.Years = append(d.Years, yc)
	}
	return d, nil
}
