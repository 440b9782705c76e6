package sentiment

// portugueseLexicon returns the built-in tables for Brazilian Portuguese
// news text about public-sector technology.
func portugueseLexicon() LexiconData {
	return LexiconData{
		Positive: map[string]float64{
			// strong
			"excelente":      3,
			"excelentes":     3,
			"excelência":     3,
			"ótimo":          3,
			"ótima":          3,
			"ótimos":         3,
			"ótimas":         3,
			"extraordinário": 3,
			"extraordinária": 3,
			"fantástico":     3,
			"fantástica":     3,
			"maravilhoso":    3,
			"maravilhosa":    3,
			"incrível":       3,
			"brilhante":      3,
			"revolucionário": 3,
			"revolucionária": 3,
			"sucesso":        2.5,
			"referência":     2.5,
			"pioneiro":       2.5,
			"pioneira":       2.5,

			// moderate
			"inovação":       2,
			"inovações":      2,
			"inovador":       2,
			"inovadora":      2,
			"inovadores":     2,
			"inovadoras":     2,
			"avanço":         2,
			"avanços":        2,
			"progresso":      2,
			"conquista":      2,
			"conquistas":     2,
			"benefício":      2,
			"benefícios":     2,
			"eficiente":      2,
			"eficientes":     2,
			"eficiência":     2,
			"eficaz":         2,
			"oportunidade":   2,
			"oportunidades":  2,
			"melhor":         2,
			"melhores":       2,
			"melhoria":       2,
			"melhorias":      2,
			"modernização":   2,
			"crescimento":    2,
			"destaque":       2,
			"reconhecimento": 2,
			"premiado":       2,
			"premiada":       2,
			"vantagem":       2,
			"vantagens":      2,
			"promissor":      2,
			"promissora":     2,
			"satisfação":     2,
			"feliz":          2,
			"fortalece":      2,
			"fortalecimento": 2,

			// mild
			"bom":             1,
			"boa":             1,
			"bons":            1,
			"boas":            1,
			"positivo":        1,
			"positiva":        1,
			"qualidade":       1,
			"iniciativa":      1,
			"iniciativas":     1,
			"parceria":        1,
			"parcerias":       1,
			"investimento":    1,
			"investimentos":   1,
			"solução":         1,
			"soluções":        1,
			"desenvolvimento": 1,
			"transformação":   1,
			"importante":      1,
			"estratégico":     1,
			"estratégica":     1,
			"útil":            1,
			"potencial":       1,
			"apoio":           1,
			"ajuda":           1,
			"facilita":        1,
			"capacitação":     1,
			"inclusão":        1,
			"transparência":   1,
			"acessível":       1,
			"segurança":       1,
			"liderança":       1,
			"melhorar":        1,
			"ampliar":         1,
			"amplia":          1,
		},
		Negative: map[string]float64{
			// strong
			"péssimo":      3,
			"péssima":      3,
			"terrível":     3,
			"horrível":     3,
			"fracasso":     3,
			"desastre":     3,
			"catastrófico": 3,
			"fraude":       3,
			"corrupção":    3,
			"escândalo":    2.5,

			// moderate
			"desemprego":     2,
			"preocupação":    2,
			"preocupações":   2,
			"preocupante":    2,
			"risco":          2,
			"riscos":         2,
			"problema":       2,
			"problemas":      2,
			"ruim":           2,
			"ruins":          2,
			"falha":          2,
			"falhas":         2,
			"erro":           2,
			"erros":          2,
			"perigo":         2,
			"perigoso":       2,
			"perigosa":       2,
			"ameaça":         2,
			"ameaças":        2,
			"crise":          2,
			"preconceito":    2,
			"discriminação":  2,
			"desigualdade":   2,
			"exclusão":       2,
			"golpe":          2,
			"golpes":         2,
			"ataque":         2,
			"ataques":        2,
			"vazamento":      2,
			"invasão":        2,
			"desinformação":  2,
			"manipulação":    2,
			"prejuízo":       2,
			"prejuízos":      2,
			"medo":           2,
			"demissões":      2,
			"insegurança":    2,
			"precarização":   2,
			"ineficiente":    2,
			"irregularidade": 2,
			"denúncia":       2,

			// mild
			"dificuldade":  1,
			"dificuldades": 1,
			"limitação":    1,
			"limitações":   1,
			"viés":         1,
			"polêmica":     1,
			"crítica":      1,
			"críticas":     1,
			"negativo":     1,
			"negativa":     1,
			"atraso":       1,
			"atrasos":      1,
			"vigilância":   1,
			"caro":         1,
			"lento":        1,
			"obstáculo":    1,
			"obstáculos":   1,
			"desafio":      1,
			"desafios":     1,
		},
		Negations: []string{
			"não", "nao", "nem", "nunca", "jamais", "nada", "nenhum",
			"nenhuma", "ninguém", "sem", "tampouco",
		},
		Breakers: []string{
			"mas", "porém", "porem", "contudo", "entretanto", "todavia",
			"embora", "entanto",
		},
		Intensifiers: map[string]float64{
			"muito":         1.5,
			"muita":         1.5,
			"muitos":        1.5,
			"muitas":        1.5,
			"bastante":      1.5,
			"super":         1.5,
			"bem":           1.3,
			"tão":           1.3,
			"realmente":     1.3,
			"altamente":     1.8,
			"totalmente":    1.8,
			"completamente": 1.8,
			"extremamente":  2,
			"absolutamente": 2,
		},
		Neutral: []string{
			"o", "a", "os", "as", "um", "uma", "uns", "umas",
			"de", "do", "da", "dos", "das", "em", "no", "na", "nos", "nas",
			"ao", "aos", "à", "às", "pelo", "pela", "pelos", "pelas",
			"e", "ou", "que", "se", "para", "com", "por", "como", "mais",
			"sobre", "entre", "até", "desde", "durante", "após", "através",
			"este", "esta", "estes", "estas", "esse", "essa", "isso", "isto",
			"aquele", "aquela", "ele", "ela", "eles", "elas",
			"seu", "sua", "seus", "suas", "nosso", "nossa",
			"ser", "estar", "ter", "foi", "são", "está", "será", "sendo",
			"tem", "têm", "pode", "podem", "também", "ainda", "já",
			"quando", "onde", "qual", "quais", "outro", "outra",
		},
		Informative: []string{
			"sistema", "tecnologia", "projeto", "dados", "informação",
			"relatório", "apresenta", "desenvolve", "implementa", "utiliza",
			"funciona", "processo", "método", "análise", "estudo",
			"pesquisa", "resultado", "modelo", "algoritmo", "software",
			"hardware", "digital", "eletrônico", "computacional",
			"secretaria", "governo", "estado", "municipal", "público",
			"serviço", "piauí", "brasil", "nacional", "federal",
			"estadual", "regional",
		},
	}
}
