// Package carbonml trains, selects, and explains regression models for
// household carbon-emission prediction.
//
// The pipeline loads a mixed-type CSV, routes numeric columns through
// standardization and categorical columns through one-hot encoding, imputes
// missing values on the assembled matrix, and fits a fixed candidate set of
// tree ensembles on one deterministic train/test split. The candidate with
// the highest held-out R² is kept, its feature importances are reported under
// reconstructed post-encoding names, and the fitted chain is persisted with
// gob.
//
// # Quick Start
//
//	tbl, err := dataset.ReadCSV("carbon.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	features, y, err := tbl.SplitTarget("CarbonEmission")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pre, _, _, err := compose.NewPreprocessor(features)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := selection.NewTrainer().Train(selection.NewDefaultCandidates(pre), features, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	best, err := selection.SelectBest(results)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("best: %s R2=%.4f\n", best.Name, best.R2)
//
// # Packages
//
//   - dataset: typed column table and CSV ingestion
//   - preprocessing: StandardScaler, OneHotEncoder, SimpleImputer
//   - compose: column routing and feature-matrix assembly
//   - pipeline: the preprocessing→imputation→estimator chain
//   - ensemble: RandomForestRegressor and GradientBoostingRegressor
//   - metrics: MAE, RMSE, R²
//   - selection: deterministic split, candidate training, best-by-R² choice
//   - inspect: importance ranking under post-encoding feature names
//   - plotting: importance bar charts
//
// Training is sequential and fully seeded: the same input always reproduces
// the same models, metrics, and selection.
package carbonml
