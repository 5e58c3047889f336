package mapper

func ptr(s string) *string { return &s }
