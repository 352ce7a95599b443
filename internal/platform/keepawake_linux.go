//go:build linux

package platform

func newKeepAwake(appName string) KeepAwake {
	return newCommandKeepAwake("systemd-inhibit",
		"--what=idle:sleep",
		"--who="+appName,
		"--why=countdown running",
		"--mode=block",
		"sleep", "infinity",
	)
}
