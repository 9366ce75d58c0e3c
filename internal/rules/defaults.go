package rules

// DefaultSet returns the built-in cascade. More specific, anchored rules come
// first; generic catch-alls last. Order is load-bearing.
func DefaultSet() Set {
	return Set{
		Account: []Rule{
			MustRule("labeled-account",
				`account\s*(?:number|no\.?|#)?\s*[:#]\s*([A-Z]{2,10}\d{4,12})`),
			MustRule("labeled-account-spaced",
				`account\s*(?:number|no\.?|#)\s+([A-Z]{2,10}\d{4,12})`),
			MustRule("labeled-member",
				`(?:member|customer)\s*(?:id|number|no\.?)\s*[:#]?\s*([A-Z]{2,10}\d{4,12})`),
			MustRule("bare-account",
				`\b([A-Z]{4,10}\d{6,12})\b`),
		},
		Name: []Rule{
			MustRule("labeled-holder",
				`account\s*holder\s*[:]\s*([A-Za-z][A-Za-z .'&-]+?)\s*(?:\n|$)`),
			MustRule("labeled-name",
				`(?:customer\s*)?name\s*[:]\s*([A-Za-z][A-Za-z .'&-]+?)\s*(?:\n|$)`),
			MustRule("billed-to",
				`(?:billed?|bill|statement)\s*(?:to|for)\s*[:]?\s*([A-Za-z][A-Za-z .'&-]+?)\s*(?:\n|$)`),
		},
	}
}
