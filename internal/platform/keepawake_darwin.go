//go:build darwin

package platform

func newKeepAwake(appName string) KeepAwake {
	return newCommandKeepAwake("caffeinate", "-d", "-i")
}
