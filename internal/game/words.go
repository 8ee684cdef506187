package game

import "github.com/unsalatasoy/wordmatch/internal/models"

// wordCatalog is the static pool every deck draws from. Decks use pairs in
// catalog order, so the first eight entries of each relation form the
// standard board.
var wordCatalog = []models.WordPair{
	{WordA: "büyük", WordB: "kocaman", Relation: models.RelationSynonym},
	{WordA: "küçük", WordB: "ufak", Relation: models.RelationSynonym},
	{WordA: "güzel", WordB: "hoş", Relation: models.RelationSynonym},
	{WordA: "çirkin", WordB: "kötü", Relation: models.RelationSynonym},
	{WordA: "hızlı", WordB: "süratli", Relation: models.RelationSynonym},
	{WordA: "yavaş", WordB: "ağır", Relation: models.RelationSynonym},
	{WordA: "akıllı", WordB: "zeki", Relation: models.RelationSynonym},
	{WordA: "aptal", WordB: "ahmak", Relation: models.RelationSynonym},
	{WordA: "mutlu", WordB: "sevinçli", Relation: models.RelationSynonym},
	{WordA: "üzgün", WordB: "kederli", Relation: models.RelationSynonym},
	{WordA: "büyük", WordB: "küçük", Relation: models.RelationAntonym},
	{WordA: "güzel", WordB: "çirkin", Relation: models.RelationAntonym},
	{WordA: "hızlı", WordB: "yavaş", Relation: models.RelationAntonym},
	{WordA: "akıllı", WordB: "aptal", Relation: models.RelationAntonym},
	{WordA: "mutlu", WordB: "üzgün", Relation: models.RelationAntonym},
	{WordA: "açık", WordB: "kapalı", Relation: models.RelationAntonym},
	{WordA: "sıcak", WordB: "soğuk", Relation: models.RelationAntonym},
	{WordA: "uzun", WordB: "kısa", Relation: models.RelationAntonym},
	{WordA: "kalın", WordB: "ince", Relation: models.RelationAntonym},
	{WordA: "yaşlı", WordB: "genç", Relation: models.RelationAntonym},
}
