package export

import (
	"math"

	"github.com/jung-kurt/gofpdf"
)

// Chart primitives drawn directly with vector geometry. Every entry point
// guards degenerate input (empty series, zero or NaN totals) by skipping
// the draw instead of emitting invalid geometry.

const (
	chartHeight = 55.0
	chartGap    = 10.0
)

// barChart draws one bar per value, height proportional to value/max.
func (d *pdfDoc) barChart(labels []string, values []float64) {
	max := maxValue(values)
	if len(values) == 0 || max <= 0 {
		return
	}
	d.ensure(chartHeight + chartGap)

	baseline := d.y + chartHeight
	slot := contentWidth / float64(len(values))
	barW := slot * 0.6

	d.setFill(brandColor)
	d.pdf.SetFont("Helvetica", "", 7)
	for i, v := range values {
		if v <= 0 || math.IsNaN(v) {
			continue
		}
		h := v / max * (chartHeight - 12)
		x := marginLeft + float64(i)*slot + (slot-barW)/2
		d.pdf.Rect(x, baseline-h, barW, h, "F")

		d.setText(grayText)
		label := labels[i]
		lw := d.pdf.GetStringWidth(label)
		d.pdf.Text(x+barW/2-lw/2, baseline+4, label)
	}

	d.resetTextColor()
	d.y = baseline + chartGap
}

// pieChart draws a full circle as filled triangles fanned from the
// center, slice angle proportional to value/total.
func (d *pdfDoc) pieChart(labels []string, values []float64) {
	total := sum(values)
	if len(values) == 0 || total <= 0 || math.IsNaN(total) {
		return
	}
	d.ensure(chartHeight + chartGap)

	const radius = 24.0
	cx := marginLeft + radius + 4
	cy := d.y + chartHeight/2

	palette := []rgb{
		brandColor, incomeColor, {243, 156, 18}, {142, 68, 173}, {22, 160, 133}, {127, 140, 141},
	}

	angle := -math.Pi / 2
	legendY := d.y + 6
	d.pdf.SetFont("Helvetica", "", 8)
	for i, v := range values {
		if v <= 0 || math.IsNaN(v) {
			continue
		}
		c := palette[i%len(palette)]
		d.setFill(c)

		sweep := v / total * 2 * math.Pi
		steps := int(math.Ceil(sweep / 0.1))
		if steps < 1 {
			steps = 1
		}
		step := sweep / float64(steps)
		for s := 0; s < steps; s++ {
			a0 := angle + float64(s)*step
			a1 := a0 + step
			d.pdf.Polygon([]gofpdf.PointType{
				{X: cx, Y: cy},
				{X: cx + radius*math.Cos(a0), Y: cy + radius*math.Sin(a0)},
				{X: cx + radius*math.Cos(a1), Y: cy + radius*math.Sin(a1)},
			}, "F")
		}
		angle += sweep

		d.pdf.Rect(cx+radius+12, legendY-2.5, 3, 3, "F")
		d.resetTextColor()
		d.pdf.Text(cx+radius+17, legendY, labels[i])
		legendY += 5
	}

	d.y += chartHeight + chartGap
}

// lineChart draws connected point-to-point segments with a value label
// at each point.
func (d *pdfDoc) lineChart(labels []string, values []float64) {
	if len(values) < 2 {
		return
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if math.IsNaN(v) {
			return
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if max == min {
		max = min + 1
	}
	d.ensure(chartHeight + chartGap)

	top := d.y + 6
	plotH := chartHeight - 16
	slot := contentWidth / float64(len(values))

	pointAt := func(i int) (float64, float64) {
		x := marginLeft + float64(i)*slot + slot/2
		y := top + plotH - (values[i]-min)/(max-min)*plotH
		return x, y
	}

	d.setDraw(brandColor)
	d.pdf.SetLineWidth(0.5)
	for i := 1; i < len(values); i++ {
		x0, y0 := pointAt(i - 1)
		x1, y1 := pointAt(i)
		d.pdf.Line(x0, y0, x1, y1)
	}

	d.setFill(brandColor)
	d.pdf.SetFont("Helvetica", "", 7)
	for i := range values {
		x, y := pointAt(i)
		d.pdf.Circle(x, y, 1.2, "F")

		d.setText(grayText)
		label := money(values[i])
		lw := d.pdf.GetStringWidth(label)
		d.pdf.Text(x-lw/2, y-3, label)
		d.pdf.Text(x-d.pdf.GetStringWidth(labels[i])/2, top+plotH+5, labels[i])
	}

	d.pdf.SetLineWidth(0.2)
	d.resetTextColor()
	d.y += chartHeight + chartGap
}

func maxValue(values []float64) float64 {
	var max float64
	for _, v := range values {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	return max
}
