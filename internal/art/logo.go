package art

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/gnomegl/gitcards/internal/utils"
)

func PrintLogo(w io.Writer) {
	logo := figure.NewFigure("gitcards", "chunky", false)
	fmt.Fprintf(w, "\033[36m%s\033[0m", logo.String())
	fmt.Fprintf(w, "              \033[91mv%s by gnomegl\033[0m\n\n", utils.GetVersion())
}
