// Package buckets registers the dashboard datasets with the core registry.
// Import this package to ensure all buckets are registered.
package buckets

import "github.com/JonMunkholm/ISS/internal/core"

func init() {
	registerReturns()
	registerFC()
	registerInbound()
	registerCatalog()
	registerBinCheck()
	registerOthers()
}

func registerReturns() {
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "cret",
			Group:       "Returns",
			Label:       "CRET",
			Description: "Records with cret in Title, C-Return/Customer Return in Item, or tsCret in PhysicalLocation",
			Order:       10,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.CRET },
	})
}

func registerFC() {
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "fc_receive",
			Group:       "FC",
			Label:       "FC Receive",
			Description: `PendingReason contains "fc receive"`,
			Order:       20,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.FCReceive.Bucket },
	})
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "fc_actionable",
			Group:       "FC",
			Label:       "FC Actionable",
			Description: `PendingReason contains "requester information" and "fc actionable"`,
			Order:       30,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.FCActionable.Bucket },
	})
}

func registerInbound() {
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "mfi",
			Group:       "Inbound",
			Label:       "MFI",
			Description: `Item contains "FBA Missing from Inbound"`,
			Order:       40,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.MFI.Bucket },
	})
}

func registerCatalog() {
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "rbs_psas",
			Group:       "Catalog",
			Label:       "RBS / PSAS",
			Description: "Pending with RBS / PSAS items",
			Order:       50,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.RBSPSAS },
	})
}

func registerBinCheck() {
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "bin_check",
			Group:       "Bin Check",
			Label:       "Bin Check",
			Description: "Andon Cord + Bin Check Request",
			Order:       60,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.BinCheck.Bucket },
	})
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "andon_cord",
			Group:       "Bin Check",
			Label:       "Andon Cord",
			Description: `Title contains "andon cord"`,
			Order:       61,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.BinCheck.AndonCord },
	})
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "bin_check_request",
			Group:       "Bin Check",
			Label:       "Bin Check Request",
			Description: `Title contains "bin check request on"`,
			Order:       62,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.BinCheck.BinCheckRequest },
	})
}

func registerOthers() {
	core.Register(core.BucketDefinition{
		Info: core.BucketInfo{
			Key:         "others",
			Group:       "Others",
			Label:       "Others",
			Description: "Uncategorized records",
			Order:       70,
		},
		Select: func(a core.AnalysisResult) core.Bucket { return a.Others },
	})
}
