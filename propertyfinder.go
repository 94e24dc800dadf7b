package jsonh

// FindPropertyValue scans a fresh token stream for a top-level property
// named name, stopping as soon as it is found rather than materializing
// the whole document (spec.md's Property Finder operation). It reports
// whether the cursor is now positioned at the start of that property's
// value; the caller can continue consuming tok to read the value itself.
func FindPropertyValue(tok *Tokenizer, name string) (bool, error) {
	depth := 0
	for token, err := range tok.ReadElement() {
		if err != nil {
			return false, err
		}
		switch token.Kind {
		case StartObject, StartArray:
			depth++
		case EndObject, EndArray:
			depth--
		case PropertyName:
			if depth == 1 && token.Value == name {
				// The name is yielded before its ':' separator; move past
				// it so the cursor rests at the start of the value.
				var skipErr error
				skip := func(_ Token, err error) bool {
					skipErr = err
					return err == nil
				}
				if tok.skipCommentsAndWhitespace(skip) {
					tok.cur.ReadIf(':')
					tok.skipCommentsAndWhitespace(skip)
				}
				return skipErr == nil, skipErr
			}
		}
	}
	return false, nil
}
