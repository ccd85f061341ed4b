package commands

const (
	_etc = "/usr/local/etc/weeklock"

	DEFAULT_CONFIG = _etc + "/weeklock.yaml"
)
