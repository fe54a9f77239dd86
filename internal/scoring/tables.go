package scoring

func intPtr(n int) *int { return &n }

// Tables is the fixed set of Vandringspris award tables, in display order.
// Titles follow the club's Swedish table names.
var Tables = []Table{
	{
		ID:    "mostRaces",
		Title: "Flest tävlingar",
		Kind:  KindRaceCount,
		Params: Params{
			Status: StatusOKOrMispunch,
		},
	},
	{
		ID:    "mostPoints",
		Title: "Flest poäng",
		Kind:  KindPoints,
		Params: Params{
			TopN:   TopNAll,
			Status: StatusOKOnly,
		},
	},
	{
		ID:    "top5",
		Title: "Flest poäng 5 bästa tävlingarna",
		Kind:  KindPoints,
		Params: Params{
			TopN:   5,
			Status: StatusOKOnly,
		},
	},
	{
		ID:    "top5_0_16",
		Title: "Flest poäng 5 bästa tävlingarna 0–16 år",
		Kind:  KindPoints,
		Params: Params{
			TopN:   5,
			AgeMin: intPtr(0),
			AgeMax: intPtr(16),
			Status: StatusOKOnly,
		},
	},
	{
		ID:    "top10",
		Title: "Flest poäng 10 bästa tävlingarna",
		Kind:  KindPoints,
		Params: Params{
			TopN:   10,
			Status: StatusOKOnly,
		},
	},
	{
		ID:    "top10_0_20",
		Title: "Flest poäng 10 bästa tävlingarna 0–20 år",
		Kind:  KindPoints,
		Params: Params{
			TopN:   10,
			AgeMin: intPtr(0),
			AgeMax: intPtr(20),
			Status: StatusOKOnly,
		},
	},
	{
		ID:    "top10_21_34",
		Title: "Flest poäng 10 bästa tävlingarna 21–34 år",
		Kind:  KindPoints,
		Params: Params{
			TopN:   10,
			AgeMin: intPtr(21),
			AgeMax: intPtr(34),
			Status: StatusOKOnly,
		},
	},
	{
		ID:    "top10_35_99",
		Title: "Flest poäng 10 bästa tävlingarna 35–99 år",
		Kind:  KindPoints,
		Params: Params{
			TopN:   10,
			AgeMin: intPtr(35),
			AgeMax: intPtr(99),
			Status: StatusOKOnly,
		},
	},
	{
		ID:    "top10_60_99",
		Title: "Flest poäng 10 bästa tävlingarna 60–99 år",
		Kind:  KindPoints,
		Params: Params{
			TopN:   10,
			AgeMin: intPtr(60),
			AgeMax: intPtr(99),
			Status: StatusOKOnly,
		},
	},
	{
		ID:    "championship",
		Title: "Flest poäng Mästerskap",
		Kind:  KindPoints,
		Params: Params{
			TopN:             TopNAll,
			OnlyChampionship: true,
			Status:           StatusOKOnly,
		},
	},
}

// TableByID looks up a table definition by id.
func TableByID(id string) (Table, bool) {
	for _, t := range Tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}
