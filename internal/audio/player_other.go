//go:build !linux && !darwin

package audio

func lookupCommand() (string, []string, error) {
	return "", nil, ErrToneUnsupported
}
