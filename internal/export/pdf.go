package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF writes a one-page PDF of pageW x pageH points with im stretched
// over the whole page.
func WritePDF(w io.Writer, im image.Image, pageW, pageH float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, im); err != nil {
		return fmt.Errorf("failed to encode page bitmap: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("vitae", true)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("page", opts, &buf)
	pdf.ImageOptions("page", 0, 0, pageW, pageH, false, opts, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
