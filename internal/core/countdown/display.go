package countdown

import "fmt"

// Display splits remaining seconds into zero-padded minute and second strings.
func Display(remaining int) (minutes, seconds string) {
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%02d", remaining/60), fmt.Sprintf("%02d", remaining%60)
}

// Clock formats remaining seconds as MM:SS.
func Clock(remaining int) string {
	minutes, seconds := Display(remaining)
	return minutes + ":" + seconds
}
